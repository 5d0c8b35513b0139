package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
	"github.com/Spok95/rawmat-report/internal/infra/metrics"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Plans возвращает месячные планы версии за месяцы интервала для материалов под фильтром.
func (r *Repo) Plans(ctx context.Context, version string, rng dates.Range, f materials.Filter) ([]Plan, error) {
	defer metrics.ObserveQuery("budget_plans")()

	q := `
		SELECT material_id, version, month, COALESCE(budget_t, 0), COALESCE(forecast_t, 0)
		FROM budget_plans
		WHERE version = $1 AND month BETWEEN $2 AND $3`
	args := []any{version, rng.From.FirstOfMonth().Time(), rng.To.FirstOfMonth().Time()}
	if !f.IsEmpty() {
		where, fargs := f.Where(len(args))
		q += ` AND material_id IN (SELECT id FROM materials` + where + `)`
		args = append(args, fargs...)
	}
	q += ` ORDER BY material_id, month`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("budget plans %s: %w", version, err)
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var (
			p     Plan
			month time.Time
		)
		if err := rows.Scan(&p.MaterialID, &p.Version, &month, &p.Budget, &p.Forecast); err != nil {
			return nil, err
		}
		p.Month = dates.FromTime(month)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Shutdowns(ctx context.Context, version string, rng dates.Range) ([]Shutdown, error) {
	defer metrics.ObserveQuery("shutdown_hours")()

	rows, err := r.pool.Query(ctx, `
		SELECT day, budget_hours, forecast_hours
		FROM shutdown_hours
		WHERE version = $1 AND day BETWEEN $2 AND $3
		  AND (budget_hours > 0 OR forecast_hours > 0)
		ORDER BY day
	`, version, rng.From.Time(), rng.To.Time())
	if err != nil {
		return nil, fmt.Errorf("shutdown hours %s: %w", version, err)
	}
	defer rows.Close()

	var out []Shutdown
	for rows.Next() {
		var (
			s   Shutdown
			day time.Time
		)
		if err := rows.Scan(&day, &s.BudgetHours, &s.ForecastHours); err != nil {
			return nil, err
		}
		s.Day = dates.FromTime(day)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Versions отдаёт все версии планов по алфавиту.
func (r *Repo) Versions(ctx context.Context) ([]string, error) {
	defer metrics.ObserveQuery("budget_versions")()

	rows, err := r.pool.Query(ctx, `SELECT DISTINCT version FROM budget_plans ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
