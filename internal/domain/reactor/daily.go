package reactor

import (
	"github.com/shopspring/decimal"

	"github.com/Spok95/rawmat-report/internal/dates"
)

var (
	hours   = decimal.NewFromInt(24)
	hundred = decimal.NewFromInt(100)
)

type sums struct {
	inOperation, feed, coal, dustSet, dustOut, slag decimal.Decimal
}

// DailyFigures группирует часовые записи по производственным суткам
// и считает суточные показатели. Дни вне rng отбрасываются.
func DailyFigures(readings []Reading, rng dates.Range) map[dates.Day]Daily {
	acc := map[dates.Day]*sums{}
	for _, r := range readings {
		d := dates.ProductionDay(r.At)
		if !rng.Contains(d) {
			continue
		}
		s, ok := acc[d]
		if !ok {
			s = &sums{}
			acc[d] = s
		}
		s.inOperation = s.inOperation.Add(decimal.NewFromFloat(r.InOperation))
		s.feed = s.feed.Add(decimal.NewFromFloat(r.Feed))
		s.coal = s.coal.Add(decimal.NewFromFloat(r.CoalDosing))
		s.dustSet = s.dustSet.Add(decimal.NewFromFloat(r.DustSetpoint))
		s.dustOut = s.dustOut.Add(decimal.NewFromFloat(r.DustDischarge))
		s.slag = s.slag.Add(decimal.NewFromFloat(r.SlagTap))
	}

	out := make(map[dates.Day]Daily, len(acc))
	for d, s := range acc {
		out[d] = Daily{
			Day:          d,
			Availability: s.inOperation.Div(hours).Mul(hundred).Round(2).InexactFloat64(),
			AvgFeed:      s.feed.Div(hours).Round(2).InexactFloat64(),
			Recirculate:  s.dustSet.Add(s.dustOut).Add(s.coal).InexactFloat64(),
			PbInSlag:     s.slag.Div(hours).Round(2).InexactFloat64(),
		}
	}
	return out
}
