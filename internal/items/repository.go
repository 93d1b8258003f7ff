package items

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bluething/boostpo/internal/shared"
)

// Repository describes item persistence.
type Repository interface {
	List(ctx context.Context, req shared.PageRequest) ([]Item, int64, error)
	Get(ctx context.Context, id int64) (Item, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const itemColumns = `id, name, COALESCE(description, ''), price, cost, created_by, updated_by, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Cost,
		&item.CreatedBy, &item.UpdatedBy, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

// List returns one page of items sorted by name, with the total count.
func (r *repository) List(ctx context.Context, req shared.PageRequest) ([]Item, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`,
		req.Size, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Item, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, shared.ErrNotFound
	}
	return item, err
}

// FindByIDs batch-loads items keyed by id. Missing ids are simply absent
// from the map; callers decide whether that is an error.
func (r *repository) FindByIDs(ctx context.Context, ids []int64) (map[int64]Item, error) {
	result := make(map[int64]Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result[item.ID] = item
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, item Item) (Item, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO items (name, description, price, cost, created_by, updated_by, created_at, updated_at)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8) RETURNING id`,
		item.Name, item.Description, item.Price, item.Cost,
		item.CreatedBy, item.UpdatedBy, item.CreatedAt, item.UpdatedAt).Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *repository) Update(ctx context.Context, item Item) error {
	tag, err := r.pool.Exec(ctx, `UPDATE items SET name=$1, description=NULLIF($2, ''), price=$3, cost=$4, updated_by=$5, updated_at=$6 WHERE id=$7`,
		item.Name, item.Description, item.Price, item.Cost, item.UpdatedBy, item.UpdatedAt, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an item, reporting whether a row existed.
func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
