package dates

import (
	"fmt"
	"iter"
)

// Range: закрытый интервал [From, To].
type Range struct {
	From Day
	To   Day
}

func NewRange(from, to Day) (Range, error) {
	if from.IsZero() || to.IsZero() {
		return Range{}, fmt.Errorf("%w: empty bound", ErrRange)
	}
	if to.Before(from) {
		return Range{}, fmt.Errorf("%w: %s is before %s", ErrRange, to, from)
	}
	return Range{From: from, To: to}, nil
}

// ParseRange разбирает обе границы в формате DD.MM.YYYY.
func ParseRange(from, to string) (Range, error) {
	f, err := ParseDay(from)
	if err != nil {
		return Range{}, fmt.Errorf("start date: %w", err)
	}
	t, err := ParseDay(to)
	if err != nil {
		return Range{}, fmt.Errorf("end date: %w", err)
	}
	return NewRange(f, t)
}

// Days отдаёт дни интервала по порядку. Последовательность ленивая, её можно обходить повторно.
func (r Range) Days() iter.Seq[Day] {
	return func(yield func(Day) bool) {
		if r.To.Before(r.From) {
			return
		}
		for d := r.From; !d.After(r.To); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) Len() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.Time().Sub(r.From.Time()).Hours()/24) + 1
}

func (r Range) Contains(d Day) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// WholeMonths расширяет интервал до целых месяцев: с 1-го числа месяца From
// по последнее число месяца To. План/прогноз считаются по месяцам и режутся обратно до r.
func (r Range) WholeMonths() Range {
	return Range{From: r.From.FirstOfMonth(), To: r.To.LastOfMonth()}
}

func (r Range) String() string { return r.From.Dotted() + " - " + r.To.Dotted() }
