package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/config"
	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/budget"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
	"github.com/Spok95/rawmat-report/internal/domain/movements"
	"github.com/Spok95/rawmat-report/internal/domain/reactor"
	"github.com/Spok95/rawmat-report/internal/infra/db"
	httpx "github.com/Spok95/rawmat-report/internal/infra/http"
	"github.com/Spok95/rawmat-report/internal/infra/logger"
	"github.com/Spok95/rawmat-report/internal/loader"
	"github.com/Spok95/rawmat-report/internal/report"
)

type options struct {
	config    string
	from, to  string
	version   string
	params    string
	materials string
	serve     bool
}

func main() {
	flags := pflag.NewFlagSet("report", pflag.ExitOnError)
	var o options
	flags.StringVar(&o.config, "config", "config/example.yaml", "path to YAML config")
	flags.StringVar(&o.from, "from", "", "start date, DD.MM.YYYY")
	flags.StringVar(&o.to, "to", "", "end date, DD.MM.YYYY")
	flags.StringVar(&o.version, "version", "", "budget/forecast version name")
	flags.StringVar(&o.params, "params", "", "xlsx with start date, end date and version in B1:B3")
	flags.StringVar(&o.materials, "materials", "", "xlsx with the Materialien sheet to load before the run")
	flags.BoolVar(&o.serve, "serve", false, "run the HTTP server instead of a single report")
	flags.String("out", "", "output directory (report.dir)")
	flags.String("dsn", "", "postgres DSN (postgres.dsn)")
	flags.String("addr", "", "HTTP listen address (http.addr)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(o.config, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	if err := run(cfg, o, log); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, o options, log *slog.Logger) error {
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.App.Timezone, err)
	}

	// аргументы проверяем до похода в базу: ошибка формата — сразу выход
	var (
		rng     dates.Range
		version string
	)
	if !o.serve {
		if rng, version, err = runArgs(o); err != nil {
			return err
		}
	}

	if err := db.Migrate(cfg.Postgres.DSN, log); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()
	log.Info("db connected")

	matRepo := materials.NewRepo(pool)
	planRepo := budget.NewRepo(pool)

	if o.materials != "" {
		if err := importMaterials(ctx, matRepo, o.materials, log); err != nil {
			return err
		}
	}

	svc := report.NewService(report.Deps{
		Materials: matRepo,
		Movements: movements.NewRepo(pool),
		Plans:     planRepo,
		Reactor:   reactor.NewRepo(pool, loc),
	}, aggregation.Sites{
		Furnace: cfg.Report.BaselineLocation,
		All:     cfg.Report.Locations,
	}, cfg.Report.Parallelism, log)

	if o.serve {
		return serve(ctx, cfg, svc, planRepo, log)
	}

	wb, err := svc.Build(ctx, rng, version)
	if err != nil {
		return err
	}
	path, err := writeFile(cfg.Report.Dir, wb)
	if err != nil {
		return err
	}
	log.Info("report written", "path", path, "warnings", len(wb.Warnings))
	return nil
}

// runArgs берёт интервал и версию из --params или из --from/--to/--version.
func runArgs(o options) (dates.Range, string, error) {
	if o.params != "" {
		f, err := os.Open(o.params)
		if err != nil {
			return dates.Range{}, "", err
		}
		defer func() { _ = f.Close() }()
		p, err := loader.ReadParams(f)
		if err != nil {
			return dates.Range{}, "", fmt.Errorf("%s: %w", o.params, err)
		}
		return p.Range, p.Version, nil
	}

	rng, err := dates.ParseRange(o.from, o.to)
	if err != nil {
		return dates.Range{}, "", err
	}
	if o.version == "" {
		return dates.Range{}, "", errors.New("--version is required")
	}
	return rng, o.version, nil
}

func importMaterials(ctx context.Context, repo *materials.Repo, path string, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	ms, err := loader.ReadMaterials(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := repo.Upsert(ctx, ms); err != nil {
		return fmt.Errorf("upsert materials: %w", err)
	}
	log.Info("materials loaded", "count", len(ms), "file", path)
	return nil
}

func writeFile(dir string, wb report.Workbook) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, report.FileName(wb.Meta))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := report.WriteWorkbook(f, wb); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

func serve(ctx context.Context, cfg config.Config, svc *report.Service, vers *budget.Repo, log *slog.Logger) error {
	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, svc, vers, log)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("graceful shutdown complete")
	return nil
}
