package report

import (
	"github.com/shopspring/decimal"

	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/budget"
	"github.com/Spok95/rawmat-report/internal/domain/reactor"
)

// заголовок листа Report
var Columns = []string{
	"Day",
	"Forecast in t",
	"Budget in t",
	"Actual in t",
	"Concentrates Main",
	"Concentrates Side",
	"Leach Products Intern",
	"Leach Products Extern",
	"Other Secondary",
	"Non Raw Materials Recirculates in t/d",
	"Non Raw Materials Fluxes in t/d",
	"Availability",
	"Average Feed in t/h",
	"Average Pb in Slag",
}

// Row: строка листа Report, ровно одна на день интервала.
type Row struct {
	Day      dates.Day
	Forecast float64
	Budget   float64
	Actual   float64

	// доли от базы, %
	Main           float64
	Side           float64
	Intern         float64
	Extern         float64
	OtherSecondary float64

	Recirculates float64
	Fluxes       float64

	Availability float64
	AvgFeed      float64
	PbInSlag     float64
}

// Inputs собирает всё, что идёт в лист Report. Нулевые значения допустимы:
// пустой Result или отсутствующий день дают нули.
type Inputs struct {
	Main, Side, Intern, Extern, OtherSecondary aggregation.Result

	Fluxes, Recirculates aggregation.Result

	Baseline map[dates.Day]float64
	Plan     []budget.DayValue
	Reactor  map[dates.Day]reactor.Daily
}

// Assemble строит по строке на каждый день rng по возрастанию.
// План вне интервала игнорируется.
func Assemble(rng dates.Range, in Inputs) []Row {
	plan := make(map[dates.Day]budget.DayValue, len(in.Plan))
	for _, v := range in.Plan {
		if rng.Contains(v.Day) {
			plan[v.Day] = v
		}
	}

	rows := make([]Row, 0, rng.Len())
	for d := range rng.Days() {
		r := in.Reactor[d]
		p := plan[d]
		rows = append(rows, Row{
			Day:            d,
			Forecast:       p.Forecast,
			Budget:         p.Budget,
			Actual:         in.Baseline[d],
			Main:           in.Main.Percentage(d),
			Side:           in.Side.Percentage(d),
			Intern:         in.Intern.Percentage(d),
			Extern:         in.Extern.Percentage(d),
			OtherSecondary: in.OtherSecondary.Percentage(d),
			Recirculates: decimal.NewFromFloat(r.Recirculate).
				Add(decimal.NewFromFloat(in.Recirculates.Total(d))).InexactFloat64(),
			Fluxes:       in.Fluxes.Total(d),
			Availability: r.Availability,
			AvgFeed:      r.AvgFeed,
			PbInSlag:     r.PbInSlag,
		})
	}
	return rows
}

// Cells форматирует строку в порядке Columns.
func (r Row) Cells() []string {
	return []string{
		r.Day.ISO(),
		num(r.Forecast, 0),
		num(r.Budget, 0),
		num(r.Actual, 2),
		pct(r.Main, 2),
		pct(r.Side, 1),
		pct(r.Intern, 1),
		pct(r.Extern, 1),
		pct(r.OtherSecondary, 1),
		num(r.Recirculates, 0),
		num(r.Fluxes, 0),
		pct(r.Availability, 1),
		num(r.AvgFeed, 0),
		pct(r.PbInSlag, 1),
	}
}

func num(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

func pct(v float64, places int32) string { return num(v, places) + " %" }
