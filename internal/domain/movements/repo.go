package movements

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/infra/metrics"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// SumByMaterial суммирует кг по материалам за день для вида mt и набора площадок.
func (r *Repo) SumByMaterial(ctx context.Context, day dates.Day, mt MoveType, locations []int) ([]Sum, error) {
	defer metrics.ObserveQuery("movements_by_material")()

	rows, err := r.pool.Query(ctx, `
		SELECT material_id, SUM(qty_kg)
		FROM stock_movements
		WHERE location = ANY($1) AND move_type = $2 AND posted_on = $3
		GROUP BY material_id
		ORDER BY material_id
	`, locations, string(mt), day.Time())
	if err != nil {
		return nil, fmt.Errorf("sum movements %s %s: %w", mt, day, err)
	}
	defer rows.Close()

	var out []Sum
	for rows.Next() {
		var s Sum
		if err := rows.Scan(&s.MaterialID, &s.Kg); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Sum считает общую сумму кг за день по одной площадке. Если строк нет — 0.
func (r *Repo) Sum(ctx context.Context, day dates.Day, mt MoveType, location int) (float64, error) {
	defer metrics.ObserveQuery("movements_total")()

	var kg float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(qty_kg), 0)
		FROM stock_movements
		WHERE location = $1 AND move_type = $2 AND posted_on = $3
	`, location, string(mt), day.Time()).Scan(&kg)
	if err != nil {
		return 0, fmt.Errorf("total movements %s %s: %w", mt, day, err)
	}
	return kg, nil
}
