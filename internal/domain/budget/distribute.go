package budget

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Spok95/rawmat-report/internal/dates"
)

var ErrNoPlan = errors.New("no budget or forecast for the period")

var hoursPerDay = decimal.NewFromInt(24)

// month: доля одного календарного месяца внутри интервала.
type month struct {
	hours                    int64 // часы интервала внутри месяца
	budget, forecast         decimal.Decimal
	downBudget, downForecast decimal.Decimal
}

// rate: чистая часовая ставка месяца.
func (m *month) rate() (budget, forecast decimal.Decimal) {
	total := decimal.NewFromInt(m.hours)
	return hourly(m.budget.Round(3), total.Sub(m.downBudget)),
		hourly(m.forecast.Round(3), total.Sub(m.downForecast))
}

// months прорейтит месячные значения по часам интервала rng, отдельно для каждого месяца.
func months(plans []Plan, rng dates.Range) map[dates.Day]*month {
	out := map[dates.Day]*month{}
	for d := range rng.Days() {
		k := d.FirstOfMonth()
		if out[k] == nil {
			out[k] = &month{}
		}
		out[k].hours += 24
	}

	for _, p := range plans {
		m, ok := out[p.Month.FirstOfMonth()]
		if !ok {
			continue
		}
		monthHours := decimal.NewFromInt(int64(p.Month.DaysInMonth()) * 24)
		share := decimal.NewFromInt(m.hours).Div(monthHours)
		m.budget = m.budget.Add(decimal.NewFromFloat(p.Budget).Mul(share))
		m.forecast = m.forecast.Add(decimal.NewFromFloat(p.Forecast).Mul(share))
	}
	return out
}

// Distribute раскладывает план и прогноз интервала rng по дням.
// Ставка своя у каждого календарного месяца: план месяца делится на его чистые
// рабочие часы (24*дни минус простои этого месяца). День получает ставку своего
// месяца * max(24 - простой дня, 0), округление до 3 знаков.
func Distribute(plans []Plan, shutdowns []Shutdown, rng dates.Range) ([]DayValue, error) {
	ms := months(plans, rng)
	empty := true
	for _, m := range ms {
		if !m.budget.Round(3).IsZero() || !m.forecast.Round(3).IsZero() {
			empty = false
			break
		}
	}
	if empty {
		return nil, ErrNoPlan
	}

	byDay := make(map[dates.Day]Shutdown, len(shutdowns))
	for _, s := range shutdowns {
		if !rng.Contains(s.Day) {
			continue
		}
		cur := byDay[s.Day]
		cur.Day = s.Day
		cur.BudgetHours += s.BudgetHours
		cur.ForecastHours += s.ForecastHours
		byDay[s.Day] = cur

		m := ms[s.Day.FirstOfMonth()]
		m.downBudget = m.downBudget.Add(decimal.NewFromFloat(s.BudgetHours))
		m.downForecast = m.downForecast.Add(decimal.NewFromFloat(s.ForecastHours))
	}

	out := make([]DayValue, 0, rng.Len())
	for d := range rng.Days() {
		s := byDay[d]
		budget, forecast := ms[d.FirstOfMonth()].rate()
		out = append(out, DayValue{
			Day:      d,
			Budget:   worked(s.BudgetHours).Mul(budget).Round(3).InexactFloat64(),
			Forecast: worked(s.ForecastHours).Mul(forecast).Round(3).InexactFloat64(),
		})
	}
	return out, nil
}

func hourly(v, netHours decimal.Decimal) decimal.Decimal {
	if !v.IsPositive() || !netHours.IsPositive() {
		return decimal.Zero
	}
	return v.Div(netHours)
}

func worked(shutdown float64) decimal.Decimal {
	w := hoursPerDay.Sub(decimal.NewFromFloat(shutdown))
	if w.IsNegative() {
		return decimal.Zero
	}
	return w
}

// Within оставляет только дни из rng.
func Within(vs []DayValue, rng dates.Range) []DayValue {
	out := vs[:0:0]
	for _, v := range vs {
		if rng.Contains(v.Day) {
			out = append(out, v)
		}
	}
	return out
}

// Sum складывает план и прогноз по списку дней.
func Sum(vs []DayValue) (budget, forecast float64) {
	var b, f decimal.Decimal
	for _, v := range vs {
		b = b.Add(decimal.NewFromFloat(v.Budget))
		f = f.Add(decimal.NewFromFloat(v.Forecast))
	}
	return b.InexactFloat64(), f.InexactFloat64()
}
