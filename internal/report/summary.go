package report

import (
	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
)

var SumColumns = []string{"Filter", "Total Budget", "Total Forecast", "Total Ist"}

// SumRow: итоги одной группы материалов за интервал.
type SumRow struct {
	Label    string
	Budget   float64
	Forecast float64
	Actual   float64
}

func (r SumRow) Cells() []any {
	return []any{r.Label, r.Budget, r.Forecast, r.Actual}
}

// group связывает подпись листа Category Sums с фильтром плана и вариантом факта.
type group struct {
	Label   string
	Plan    materials.Filter
	Variant aggregation.Variant
}

func groups(s aggregation.Sites) []group {
	return []group{
		{"Paid Raw Materials", materials.Filter{}, s.AllMaterials()},
		{"Delta Concentrates", materials.ByType(materials.TypeConcentrate), s.AllConcentrates()},
		{"Delta Paste", materials.ByCategory("P"), s.AllPastes()},
		{"Delta Others", materials.ByType(materials.TypeOthers), s.AllOthers()},
		{"Category H", materials.ByCategory("H"), s.ConcentratesMain()},
		{"Category N", materials.ByCategory("N"), s.ConcentratesSide()},
		{"Category PK", materials.ByCategory("PK"), s.ConcentratesPK()},
		{"Category P", materials.ByCategory("P"), s.PastesP()},
		{"Category Ox", materials.ByCategory("Ox"), s.OthersOx()},
		{"Category RI", materials.ByCategory("RI"), s.LeachIntern()},
		{"Category RE", materials.ByCategory("RE"), s.LeachExtern()},
	}
}
