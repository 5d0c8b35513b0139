package aggregation

import (
	"github.com/Spok95/rawmat-report/internal/domain/materials"
	"github.com/Spok95/rawmat-report/internal/domain/movements"
)

// Variant задаёт один прогон агрегатора.
type Variant struct {
	Name      string
	MoveType  movements.MoveType
	Locations []int
	// Filter == nil: берём все материалы из проводок, справочник не нужен.
	Filter      *materials.Filter
	Percentages bool
	Precision   int32 // знаков после запятой у тонн
}

// Sites: площадки, по которым считаются варианты.
type Sites struct {
	Furnace int   // только печь: база и оборотные материалы
	All     []int // печь и бункер
}

var DefaultSites = Sites{
	Furnace: movements.LocationFurnace,
	All:     []int{movements.LocationFurnace, movements.LocationBunker},
}

func (s Sites) raw(name string, f materials.Filter) Variant {
	return Variant{
		Name:        name,
		MoveType:    movements.MoveRaw,
		Locations:   s.All,
		Filter:      &f,
		Percentages: true,
		Precision:   1,
	}
}

func (s Sites) AllMaterials() Variant { return s.raw("all materials", materials.Filter{}) }

func (s Sites) AllConcentrates() Variant {
	return s.raw("all concentrates", materials.ByType(materials.TypeConcentrate))
}

// основные концентраты, категория H
func (s Sites) ConcentratesMain() Variant {
	return s.raw("concentrates H", materials.ByType(materials.TypeConcentrate, "H"))
}

// побочные концентраты, категория N
func (s Sites) ConcentratesSide() Variant {
	return s.raw("concentrates N", materials.ByType(materials.TypeConcentrate, "N"))
}

func (s Sites) ConcentratesPK() Variant {
	return s.raw("concentrates PK", materials.ByType(materials.TypeConcentrate, "PK"))
}

func (s Sites) AllPastes() Variant { return s.raw("all pastes", materials.ByType(materials.TypePaste)) }

func (s Sites) PastesP() Variant {
	return s.raw("pastes P", materials.ByType(materials.TypePaste, "P"))
}

func (s Sites) AllOthers() Variant { return s.raw("all others", materials.ByType(materials.TypeOthers)) }

// собственные продукты выщелачивания (RI)
func (s Sites) LeachIntern() Variant {
	return s.raw("others RI", materials.ByType(materials.TypeOthers, "RI"))
}

// сторонние продукты выщелачивания (RE)
func (s Sites) LeachExtern() Variant {
	return s.raw("others RE", materials.ByType(materials.TypeOthers, "RE"))
}

func (s Sites) OthersOx() Variant {
	return s.raw("others Ox", materials.ByType(materials.TypeOthers, "Ox"))
}

// OtherSecondary берёт категории OX и P любого типа.
func (s Sites) OtherSecondary() Variant {
	return s.raw("other secondary", materials.ByCategory("OX", "P"))
}

func (s Sites) ByName(name string) Variant {
	return s.raw("material "+name, materials.ByName(name))
}

// Fluxes: HIBE по печи и бункеру, целые тонны, без процентов.
func (s Sites) Fluxes() Variant {
	return Variant{Name: "fluxes", MoveType: movements.MoveFlux, Locations: s.All}
}

// Recirculates считает KRSM только по печи, целыми тоннами и без процентов.
func (s Sites) Recirculates() Variant {
	return Variant{Name: "recirculates", MoveType: movements.MoveRecirculate, Locations: []int{s.Furnace}}
}
