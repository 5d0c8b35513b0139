package aggregation

import "github.com/shopspring/decimal"

var (
	kgPerTon = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// tons переводит кг в тонны: модуль, /1000, округление до places знаков (от нуля).
func tons(kg float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(kg).Abs().Div(kgPerTon).Round(places)
}

// KgToTons переводит кг в тонны с places знаками.
func KgToTons(kg float64, places int32) float64 {
	return tons(kg, places).InexactFloat64()
}

// Percent = part*100/base с одним знаком. base == 0 даёт 0, а не ошибку.
func Percent(part, base float64) float64 {
	if base == 0 {
		return 0
	}
	return decimal.NewFromFloat(part).Mul(hundred).
		Div(decimal.NewFromFloat(base)).
		Round(1).
		InexactFloat64()
}
