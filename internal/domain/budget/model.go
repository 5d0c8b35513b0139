package budget

import "github.com/Spok95/rawmat-report/internal/dates"

// Plan: месячный план и прогноз одного материала в одной версии, т.
type Plan struct {
	MaterialID string
	Version    string
	Month      dates.Day // первое число месяца
	Budget     float64
	Forecast   float64
}

// часы простоя за день, для плана и прогноза отдельно
type Shutdown struct {
	Day           dates.Day
	BudgetHours   float64
	ForecastHours float64
}

// DayValue: план и прогноз на один день с учётом простоев.
type DayValue struct {
	Day      dates.Day
	Budget   float64
	Forecast float64
}
