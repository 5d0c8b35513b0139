package aggregation

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Spok95/rawmat-report/internal/dates"
)

// Rollup копит дневные суммы в месячные бакеты "YYYY-MM".
type Rollup struct {
	months map[string]decimal.Decimal
}

func NewRollup() *Rollup {
	return &Rollup{months: map[string]decimal.Decimal{}}
}

func (r *Rollup) add(day dates.Day, v decimal.Decimal) {
	k := day.Month()
	r.months[k] = r.months[k].Add(v)
}

// ключи по возрастанию
func (r *Rollup) Months() []string {
	return slices.Sorted(maps.Keys(r.months))
}

func (r *Rollup) Total(month string) float64 {
	return r.months[month].InexactFloat64()
}
