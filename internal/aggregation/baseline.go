package aggregation

import (
	"context"
	"sync"

	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/movements"
)

// BaselineSource отдаёт тонны сырья, прошедшие через печь за день (IST).
type BaselineSource interface {
	Tons(ctx context.Context, day dates.Day) (float64, error)
}

// Baseline считает фактическое сырьё: ROH на площадке печи, модуль, /1000, до целых тонн.
type Baseline struct {
	src      MovementSource
	Type     movements.MoveType
	Location int
}

func NewBaseline(src MovementSource, location int) *Baseline {
	return &Baseline{src: src, Type: movements.MoveRaw, Location: location}
}

func (b *Baseline) Tons(ctx context.Context, day dates.Day) (float64, error) {
	kg, err := b.src.Sum(ctx, day, b.Type, b.Location)
	if err != nil {
		return 0, err
	}
	return KgToTons(kg, 0), nil
}

// Memo запоминает базу по дням в пределах одного отчёта:
// её спрашивают все варианты с процентами.
type Memo struct {
	src BaselineSource

	mu   sync.Mutex
	days map[dates.Day]float64
}

func NewMemo(src BaselineSource) *Memo {
	return &Memo{src: src, days: map[dates.Day]float64{}}
}

func (m *Memo) Tons(ctx context.Context, day dates.Day) (float64, error) {
	m.mu.Lock()
	v, ok := m.days[day]
	m.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := m.src.Tons(ctx, day)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	m.days[day] = v
	m.mu.Unlock()
	return v, nil
}
