package movements

import "github.com/Spok95/rawmat-report/internal/dates"

// вид материала в складской проводке (MatArt)
type MoveType string

const (
	MoveRaw         MoveType = "ROH"  // сырьё
	MoveRecirculate MoveType = "KRSM" // оборотные материалы
	MoveFlux        MoveType = "HIBE" // флюсы и вспомогательные
)

// Площадки склада.
const (
	LocationFurnace = 55
	LocationBunker  = 53
)

// Movement: одна складская проводка. Знак QtyKg задаёт направление.
type Movement struct {
	MaterialID string
	Type       MoveType
	Location   int
	PostedOn   dates.Day
	QtyKg      float64
}

type Sum struct {
	MaterialID string
	Kg         float64
}
