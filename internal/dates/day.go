package dates

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	layoutDotted = "02.01.2006"
	layoutISO    = "2006-01-02"
	layoutMonth  = "2006-01"
)

var (
	ErrFormat = errors.New("invalid date format")
	ErrRange  = errors.New("invalid date range")

	dottedRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

// Day: календарный день без времени и зоны. Сравним через ==, годится как ключ map.
type Day struct {
	y int
	m time.Month
	d int
}

func New(y int, m time.Month, d int) Day {
	return FromTime(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// FromTime берёт календарную дату t в её собственной зоне.
func FromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Day{y: y, m: m, d: d}
}

// ParseDay разбирает DD.MM.YYYY.
func ParseDay(s string) (Day, error) {
	if !dottedRe.MatchString(s) {
		return Day{}, fmt.Errorf("%w: %q, want DD.MM.YYYY", ErrFormat, s)
	}
	t, err := time.Parse(layoutDotted, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q: %v", ErrFormat, s, err)
	}
	return FromTime(t), nil
}

// ParseISO разбирает YYYY-MM-DD.
func ParseISO(s string) (Day, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q, want YYYY-MM-DD", ErrFormat, s)
	}
	return FromTime(t), nil
}

func (d Day) IsZero() bool { return d == Day{} }

func (d Day) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Day) AddDays(n int) Day { return FromTime(d.Time().AddDate(0, 0, n)) }

func (d Day) Before(o Day) bool { return d.Time().Before(o.Time()) }
func (d Day) After(o Day) bool { return d.Time().After(o.Time()) }

func (d Day) ISO() string { return d.Time().Format(layoutISO) }
func (d Day) Dotted() string { return d.Time().Format(layoutDotted) }
func (d Day) String() string { return d.ISO() }

// Month отдаёт ключ месячного бакета, "YYYY-MM".
func (d Day) Month() string { return d.Time().Format(layoutMonth) }

func (d Day) FirstOfMonth() Day { return Day{y: d.y, m: d.m, d: 1} }

func (d Day) LastOfMonth() Day { return FromTime(d.FirstOfMonth().Time().AddDate(0, 1, -1)) }

func (d Day) DaysInMonth() int { return d.LastOfMonth().d }
