package reactor

import (
	"time"

	"github.com/Spok95/rawmat-report/internal/dates"
)

// Reading: часовая запись телеметрии реактора. Пустые показания приходят нулями.
type Reading struct {
	At            time.Time
	InOperation   float64 // признак «реактор в работе», 0..1 за час
	Feed          float64 // загрузка материала, т/ч
	CoalDosing    float64 // дозировка угольной пыли
	DustSetpoint  float64 // уставка по пыли
	DustDischarge float64 // выгрузка пыли 21B001
	SlagTap       float64 // Pb в шлаке по выпуску
}

// показатели за производственные сутки, 06:00..06:00
type Daily struct {
	Day          dates.Day
	Availability float64 // %
	AvgFeed      float64 // т/ч
	Recirculate  float64 // т, без KRSM со склада
	PbInSlag     float64 // %
}
