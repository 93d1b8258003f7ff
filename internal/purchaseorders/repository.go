package purchaseorders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bluething/boostpo/internal/platform/db"
	"github.com/bluething/boostpo/internal/shared"
)

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context, req shared.PageRequest) ([]PurchaseOrder, int64, error)
	Get(ctx context.Context, id int64) (PurchaseOrder, error)
}

// TxRepository exposes the writes that must share one transaction.
type TxRepository interface {
	InsertHeader(ctx context.Context, po PurchaseOrder) (int64, error)
	UpdateHeader(ctx context.Context, po PurchaseOrder) error
	InsertDetail(ctx context.Context, detail Detail) error
	DeleteDetails(ctx context.Context, orderID int64) error
	DeleteHeader(ctx context.Context, id int64) (bool, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps fn in a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

const headerColumns = `id, datetime, COALESCE(description, ''), total_price, total_cost, created_by, updated_by, created_at, updated_at`

func scanHeader(row pgx.Row) (PurchaseOrder, error) {
	var po PurchaseOrder
	err := row.Scan(&po.ID, &po.Datetime, &po.Description, &po.TotalPrice, &po.TotalCost,
		&po.CreatedBy, &po.UpdatedBy, &po.CreatedAt, &po.UpdatedAt)
	return po, err
}

// List returns one page of headers, newest id first. Details are not
// joined; the listing stays a light projection.
func (r *Repository) List(ctx context.Context, req shared.PageRequest) ([]PurchaseOrder, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM po_h`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+headerColumns+` FROM po_h ORDER BY id DESC LIMIT $1 OFFSET $2`,
		req.Size, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []PurchaseOrder
	for rows.Next() {
		po, err := scanHeader(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, po)
	}
	return result, total, rows.Err()
}

// Get loads a header together with its details and each detail's catalog
// name and description, all inside one read-only transaction so the
// aggregate is a consistent snapshot.
func (r *Repository) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	var po PurchaseOrder
	err := db.WithReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		po, err = scanHeader(tx.QueryRow(ctx, `SELECT `+headerColumns+` FROM po_h WHERE id=$1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}

		rows, err := tx.Query(ctx, `SELECT d.id, d.po_h_id, d.item_id, COALESCE(i.name, ''), COALESCE(i.description, ''),
d.quantity, d.unit_price, d.cost, d.created_by, d.updated_by, d.created_at, d.updated_at
FROM po_d d LEFT JOIN items i ON i.id = d.item_id WHERE d.po_h_id=$1 ORDER BY d.id ASC`, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var d Detail
			if err := rows.Scan(&d.ID, &d.OrderID, &d.ItemID, &d.ItemName, &d.ItemDescription,
				&d.Quantity, &d.UnitPrice, &d.Cost, &d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
				return err
			}
			po.Details = append(po.Details, d)
		}
		return rows.Err()
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	return po, nil
}

func (t *txRepo) InsertHeader(ctx context.Context, po PurchaseOrder) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO po_h (datetime, description, total_price, total_cost, created_by, updated_by, created_at, updated_at)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8) RETURNING id`,
		po.Datetime, po.Description, po.TotalPrice, po.TotalCost,
		po.CreatedBy, po.UpdatedBy, po.CreatedAt, po.UpdatedAt).Scan(&id)
	return id, err
}

func (t *txRepo) UpdateHeader(ctx context.Context, po PurchaseOrder) error {
	tag, err := t.tx.Exec(ctx, `UPDATE po_h SET datetime=$1, description=NULLIF($2, ''), total_price=$3, total_cost=$4, updated_by=$5, updated_at=$6 WHERE id=$7`,
		po.Datetime, po.Description, po.TotalPrice, po.TotalCost, po.UpdatedBy, po.UpdatedAt, po.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (t *txRepo) InsertDetail(ctx context.Context, detail Detail) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO po_d (po_h_id, item_id, quantity, unit_price, cost, created_by, updated_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		detail.OrderID, detail.ItemID, detail.Quantity, detail.UnitPrice, detail.Cost,
		detail.CreatedBy, detail.UpdatedBy, detail.CreatedAt, detail.UpdatedAt)
	return err
}

func (t *txRepo) DeleteDetails(ctx context.Context, orderID int64) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM po_d WHERE po_h_id=$1`, orderID)
	return err
}

func (t *txRepo) DeleteHeader(ctx context.Context, id int64) (bool, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM po_h WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
