package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
	"github.com/Spok95/rawmat-report/internal/domain/movements"
)

type MaterialResolver interface {
	Resolve(ctx context.Context, f materials.Filter) (materials.Names, error)
}

type MovementSource interface {
	SumByMaterial(ctx context.Context, day dates.Day, mt movements.MoveType, locations []int) ([]movements.Sum, error)
	Sum(ctx context.Context, day dates.Day, mt movements.MoveType, location int) (float64, error)
}

type MaterialValue struct {
	Name string
	Tons float64
}

// DayDetail: значения по материалам за один день и их сумма.
type DayDetail struct {
	Materials map[string]MaterialValue
	Total     float64
}

type Result struct {
	Variant     string
	Daily       map[dates.Day]DayDetail
	Monthly     *Rollup
	Percentages map[dates.Day]float64 // nil, если вариант без процентов
}

func (r Result) Total(day dates.Day) float64 { return r.Daily[day].Total }

func (r Result) Percentage(day dates.Day) float64 { return r.Percentages[day] }

// MaterialTons отдаёт тонны материала id за день, 0 если его нет.
func (r Result) MaterialTons(day dates.Day, id string) float64 {
	return r.Daily[day].Materials[id].Tons
}

// Sum складывает значения всех материалов по всем дням.
func (r Result) Sum() float64 {
	s := decimal.Zero
	for _, d := range r.Daily {
		for _, v := range d.Materials {
			s = s.Add(decimal.NewFromFloat(v.Tons))
		}
	}
	return s.InexactFloat64()
}

func (r Result) Days() []dates.Day {
	return slices.SortedFunc(maps.Keys(r.Daily), func(a, b dates.Day) int {
		return a.Time().Compare(b.Time())
	})
}

type Aggregator struct {
	materials MaterialResolver
	movements MovementSource
	baseline  BaselineSource
	log       *slog.Logger
}

func New(m MaterialResolver, mv MovementSource, b BaselineSource, log *slog.Logger) *Aggregator {
	return &Aggregator{materials: m, movements: mv, baseline: b, log: log}
}

// Run считает вариант v по каждому дню интервала rng.
func (a *Aggregator) Run(ctx context.Context, v Variant, rng dates.Range) (Result, error) {
	var names materials.Names
	if v.Filter != nil {
		var err error
		names, err = a.materials.Resolve(ctx, *v.Filter)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", v.Name, err)
		}
	}

	res := Result{
		Variant: v.Name,
		Daily:   make(map[dates.Day]DayDetail, rng.Len()),
		Monthly: NewRollup(),
	}
	if v.Percentages {
		res.Percentages = make(map[dates.Day]float64, rng.Len())
	}

	for day := range rng.Days() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		detail, total, err := a.day(ctx, v, names, day)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", v.Name, err)
		}
		res.Daily[day] = detail
		res.Monthly.add(day, total)

		if v.Percentages {
			base, err := a.baseline.Tons(ctx, day)
			if err != nil {
				return Result{}, fmt.Errorf("%s: baseline %s: %w", v.Name, day, err)
			}
			res.Percentages[day] = Percent(detail.Total, base)
			a.log.Debug("day aggregated",
				"variant", v.Name, "day", day.ISO(), "total", detail.Total,
				"baseline", base, "percentage", res.Percentages[day])
		} else {
			a.log.Debug("day aggregated", "variant", v.Name, "day", day.ISO(), "total", detail.Total)
		}
	}
	return res, nil
}

func (a *Aggregator) day(ctx context.Context, v Variant, names materials.Names, day dates.Day) (DayDetail, decimal.Decimal, error) {
	sums, err := a.movements.SumByMaterial(ctx, day, v.MoveType, v.Locations)
	if err != nil {
		return DayDetail{}, decimal.Zero, err
	}

	// все материалы фильтра присутствуют в дне, даже без движения
	detail := DayDetail{Materials: make(map[string]MaterialValue, len(names))}
	for id, name := range names {
		detail.Materials[id] = MaterialValue{Name: name}
	}

	total := decimal.Zero
	for _, s := range sums {
		name := ""
		if names != nil {
			var ok bool
			if name, ok = names[s.MaterialID]; !ok {
				a.log.Debug("material not in filter, skipped",
					"variant", v.Name, "day", day.ISO(), "material_id", s.MaterialID)
				continue
			}
		}
		t := tons(s.Kg, v.Precision)
		detail.Materials[s.MaterialID] = MaterialValue{Name: name, Tons: t.InexactFloat64()}
		total = total.Add(t)
	}
	detail.Total = total.InexactFloat64()
	return detail, total, nil
}
