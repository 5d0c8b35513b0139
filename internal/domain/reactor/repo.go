package reactor

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/infra/metrics"
)

type Repo struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// loc: зона, в которой пишутся отметки времени телеметрии.
func NewRepo(pool *pgxpool.Pool, loc *time.Location) *Repo {
	if loc == nil {
		loc = time.UTC
	}
	return &Repo{pool: pool, loc: loc}
}

// Readings отдаёт записи, покрывающие производственные сутки интервала:
// с 06:00 первого дня до 06:00 дня после последнего.
func (r *Repo) Readings(ctx context.Context, rng dates.Range) ([]Reading, error) {
	defer metrics.ObserveQuery("reactor_readings")()

	from, _ := dates.ProductionWindow(rng.From, r.loc)
	_, to := dates.ProductionWindow(rng.To, r.loc)

	rows, err := r.pool.Query(ctx, `
		SELECT read_at,
		       COALESCE(in_operation, 0)::float8,
		       COALESCE(feed, 0)::float8,
		       COALESCE(coal_dosing, 0)::float8,
		       COALESCE(dust_setpoint, 0)::float8,
		       COALESCE(dust_discharge, 0)::float8,
		       COALESCE(slag_tap, 0)::float8
		FROM reactor_readings
		WHERE read_at >= $1 AND read_at < $2
		ORDER BY read_at
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reactor readings %s: %w", rng, err)
	}
	defer rows.Close()

	var out []Reading
	for rows.Next() {
		var (
			rd Reading
			at time.Time
		)
		if err := rows.Scan(&at, &rd.InOperation, &rd.Feed, &rd.CoalDosing,
			&rd.DustSetpoint, &rd.DustDischarge, &rd.SlagTap); err != nil {
			return nil, err
		}
		// TIMESTAMP без зоны приходит как UTC; переносим часы в зону площадки
		rd.At = time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), at.Second(), 0, r.loc)
		out = append(out, rd)
	}
	return out, rows.Err()
}
