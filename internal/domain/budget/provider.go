package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
)

type PlanSource interface {
	Plans(ctx context.Context, version string, rng dates.Range, f materials.Filter) ([]Plan, error)
	Shutdowns(ctx context.Context, version string, rng dates.Range) ([]Shutdown, error)
}

// Provider отдаёт дневные план/прогноз для отчёта.
type Provider struct {
	src PlanSource
}

func NewProvider(src PlanSource) *Provider { return &Provider{src: src} }

// Daily считает план/прогноз по целым месяцам интервала и режет результат обратно до rng.
func (p *Provider) Daily(ctx context.Context, version string, f materials.Filter, rng dates.Range) ([]DayValue, error) {
	months := rng.WholeMonths()

	plans, err := p.src.Plans(ctx, version, months, f)
	if err != nil {
		return nil, err
	}
	shutdowns, err := p.src.Shutdowns(ctx, version, months)
	if err != nil {
		return nil, err
	}

	vs, err := Distribute(plans, shutdowns, months)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", version, f, err)
	}
	return Within(vs, rng), nil
}

// ByMaterial раскладывает план каждого материала отдельно.
// Материалы без плана и прогноза в ответ не попадают.
func (p *Provider) ByMaterial(ctx context.Context, version string, rng dates.Range) (map[string][]DayValue, error) {
	months := rng.WholeMonths()

	plans, err := p.src.Plans(ctx, version, months, materials.Filter{})
	if err != nil {
		return nil, err
	}
	shutdowns, err := p.src.Shutdowns(ctx, version, months)
	if err != nil {
		return nil, err
	}

	grouped := map[string][]Plan{}
	for _, pl := range plans {
		grouped[pl.MaterialID] = append(grouped[pl.MaterialID], pl)
	}

	out := make(map[string][]DayValue, len(grouped))
	for id, ps := range grouped {
		vs, err := Distribute(ps, shutdowns, months)
		if errors.Is(err, ErrNoPlan) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", id, err)
		}
		out[id] = Within(vs, rng)
	}
	return out, nil
}
