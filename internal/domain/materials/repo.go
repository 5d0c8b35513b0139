package materials

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/rawmat-report/internal/infra/metrics"
)

var ErrNoMaterials = errors.New("no materials found")

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Resolve возвращает id -> название для материалов под фильтром.
// Пустой результат — ErrNoMaterials, фатально ли это, решает вызывающий.
func (r *Repo) Resolve(ctx context.Context, f Filter) (Names, error) {
	defer metrics.ObserveQuery("materials_resolve")()

	where, args := f.Where(0)
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM materials`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve materials (%s): %w", f, err)
	}
	defer rows.Close()

	out := Names{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoMaterials, f)
	}
	return out, nil
}

func (r *Repo) List(ctx context.Context) ([]Material, error) {
	defer metrics.ObserveQuery("materials_list")()

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, material_type, category
		FROM materials
		ORDER BY material_type, category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.Category); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Upsert пишет справочник пачкой в одной транзакции.
func (r *Repo) Upsert(ctx context.Context, ms []Material) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, m := range ms {
		batch.Queue(`
			INSERT INTO materials (id, name, material_type, category)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id)
			DO UPDATE SET name=EXCLUDED.name, material_type=EXCLUDED.material_type, category=EXCLUDED.category
		`, m.ID, m.Name, string(m.Type), m.Category)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert materials: %w", err)
	}
	return tx.Commit(ctx)
}
