package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/budget"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
	"github.com/Spok95/rawmat-report/internal/domain/reactor"
	"github.com/Spok95/rawmat-report/internal/infra/metrics"
)

type MaterialSource interface {
	aggregation.MaterialResolver
	List(ctx context.Context) ([]materials.Material, error)
}

type ReadingSource interface {
	Readings(ctx context.Context, rng dates.Range) ([]reactor.Reading, error)
}

type Deps struct {
	Materials MaterialSource
	Movements aggregation.MovementSource
	Plans     budget.PlanSource
	Reactor   ReadingSource
}

type Meta struct {
	From    dates.Day
	To      dates.Day
	Version string
}

// Workbook содержит все три листа отчёта.
type Workbook struct {
	Meta      Meta
	Rows      []Row
	Sums      []SumRow
	Materials []MaterialRow
	Warnings  []string
}

type Service struct {
	deps        Deps
	plans       *budget.Provider
	sites       aggregation.Sites
	parallelism int
	log         *slog.Logger
}

func NewService(d Deps, sites aggregation.Sites, parallelism int, log *slog.Logger) *Service {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Service{
		deps:        d,
		plans:       budget.NewProvider(d.Plans),
		sites:       sites,
		parallelism: parallelism,
		log:         log,
	}
}

// состояние одного отчёта, пишется из горутин errgroup
type build struct {
	mu       sync.Mutex
	results  map[string]aggregation.Result
	sums     map[string]SumRow
	warnings []string
}

func (b *build) warn(log *slog.Logger, msg string, err error, args ...any) {
	log.Warn(msg, append(args, "err", err)...)
	b.mu.Lock()
	b.warnings = append(b.warnings, fmt.Sprintf("%s: %v", msg, err))
	b.mu.Unlock()
}

// Build собирает отчёт за rng по версии плана version.
// Если для группы нет материалов или плана — нули и предупреждение. Остальные ошибки фатальны.
func (s *Service) Build(ctx context.Context, rng dates.Range, version string) (wb Workbook, err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.ReportsTotal.WithLabelValues(result).Inc()
		metrics.ReportSeconds.Observe(time.Since(start).Seconds())
	}()

	log := s.log.With("from", rng.From.ISO(), "to", rng.To.ISO(), "version", version)
	log.Info("report started")

	// база общая для всех вариантов с процентами и для столбца Actual
	base := aggregation.NewMemo(aggregation.NewBaseline(s.deps.Movements, s.sites.Furnace))
	agg := aggregation.New(s.deps.Materials, s.deps.Movements, base, log)

	b := &build{results: map[string]aggregation.Result{}, sums: map[string]SumRow{}}
	gs := groups(s.sites)

	var (
		plan     []budget.DayValue
		byMat    map[string][]budget.DayValue
		readings []reactor.Reading
		mats     []materials.Material
		baseline = make(map[dates.Day]float64, rng.Len())
		variants = map[string]aggregation.Variant{}
	)
	for _, v := range s.reportVariants() {
		variants[v.Name] = v
	}
	for _, g := range gs {
		variants[g.Variant.Name] = g.Variant
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for _, v := range variants {
		g.Go(func() error {
			res, err := agg.Run(gctx, v, rng)
			if errors.Is(err, materials.ErrNoMaterials) {
				b.warn(log, "variant skipped", err, "variant", v.Name)
				res = aggregation.Result{Variant: v.Name}
			} else if err != nil {
				return err
			}
			b.mu.Lock()
			b.results[v.Name] = res
			b.mu.Unlock()
			return nil
		})
	}

	for _, gr := range gs {
		g.Go(func() error {
			vs, err := s.plans.Daily(gctx, version, gr.Plan, rng)
			if errors.Is(err, budget.ErrNoPlan) {
				b.warn(log, "no plan for group", err, "group", gr.Label)
				vs = nil
			} else if err != nil {
				return err
			}
			bt, ft := budget.Sum(vs)
			b.mu.Lock()
			b.sums[gr.Label] = SumRow{Label: gr.Label, Budget: bt, Forecast: ft}
			b.mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		vs, err := s.plans.Daily(gctx, version, materials.Filter{}, rng)
		if errors.Is(err, budget.ErrNoPlan) {
			b.warn(log, "no plan for report", err)
			return nil
		}
		plan = vs
		return err
	})

	g.Go(func() (err error) {
		byMat, err = s.plans.ByMaterial(gctx, version, rng)
		return err
	})

	g.Go(func() (err error) {
		readings, err = s.deps.Reactor.Readings(gctx, rng)
		return err
	})

	g.Go(func() (err error) {
		mats, err = s.deps.Materials.List(gctx)
		return err
	})

	g.Go(func() error {
		for d := range rng.Days() {
			t, err := base.Tons(gctx, d)
			if err != nil {
				return fmt.Errorf("baseline %s: %w", d, err)
			}
			baseline[d] = t
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("report failed", "err", err)
		return Workbook{}, err
	}

	wb = Workbook{
		Meta: Meta{From: rng.From, To: rng.To, Version: version},
		Rows: Assemble(rng, Inputs{
			Main:           b.results[s.sites.ConcentratesMain().Name],
			Side:           b.results[s.sites.ConcentratesSide().Name],
			Intern:         b.results[s.sites.LeachIntern().Name],
			Extern:         b.results[s.sites.LeachExtern().Name],
			OtherSecondary: b.results[s.sites.OtherSecondary().Name],
			Fluxes:         b.results[s.sites.Fluxes().Name],
			Recirculates:   b.results[s.sites.Recirculates().Name],
			Baseline:       baseline,
			Plan:           plan,
			Reactor:        reactor.DailyFigures(readings, rng),
		}),
		Materials: PerMaterial(mats, rng, b.results[s.sites.AllMaterials().Name], byMat),
		Warnings:  b.warnings,
	}
	for _, gr := range gs {
		row := b.sums[gr.Label]
		row.Label = gr.Label
		row.Actual = b.results[gr.Variant.Name].Sum()
		wb.Sums = append(wb.Sums, row)
	}

	log.Info("report built", "days", len(wb.Rows), "materials", len(mats), "warnings", len(wb.Warnings))
	return wb, nil
}

func (s *Service) reportVariants() []aggregation.Variant {
	return []aggregation.Variant{
		s.sites.ConcentratesMain(),
		s.sites.ConcentratesSide(),
		s.sites.LeachIntern(),
		s.sites.LeachExtern(),
		s.sites.OtherSecondary(),
		s.sites.Fluxes(),
		s.sites.Recirculates(),
		s.sites.AllMaterials(),
	}
}

// Material считает дневной факт одного материала по названию.
func (s *Service) Material(ctx context.Context, name string, rng dates.Range) (aggregation.Result, error) {
	base := aggregation.NewMemo(aggregation.NewBaseline(s.deps.Movements, s.sites.Furnace))
	agg := aggregation.New(s.deps.Materials, s.deps.Movements, base, s.log)
	return agg.Run(ctx, s.sites.ByName(name), rng)
}
