package report

import (
	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/budget"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
)

var MaterialColumns = []string{
	"Date", "Material Name", "Material ID", "Material Type", "Category", "Budget", "Forecast", "Ist",
}

type MaterialRow struct {
	Day      dates.Day
	Material materials.Material
	Budget   float64
	Forecast float64
	Actual   float64
}

func (r MaterialRow) Cells() []any {
	return []any{
		r.Day.ISO(), r.Material.Name, r.Material.ID, string(r.Material.Type), r.Material.Category,
		r.Budget, r.Forecast, r.Actual,
	}
}

// PerMaterial строит по строке на материал и день. Факт берётся из прогона по всем
// материалам, план из поматериальной раскладки. Нет данных, значит 0.
func PerMaterial(ms []materials.Material, rng dates.Range, actual aggregation.Result, plans map[string][]budget.DayValue) []MaterialRow {
	out := make([]MaterialRow, 0, len(ms)*rng.Len())
	for _, m := range ms {
		byDay := make(map[dates.Day]budget.DayValue, len(plans[m.ID]))
		for _, v := range plans[m.ID] {
			byDay[v.Day] = v
		}
		for d := range rng.Days() {
			p := byDay[d]
			out = append(out, MaterialRow{
				Day:      d,
				Material: m,
				Budget:   p.Budget,
				Forecast: p.Forecast,
				Actual:   actual.MaterialTons(d, m.ID),
			})
		}
	}
	return out
}
