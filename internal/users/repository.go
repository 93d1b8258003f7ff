package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bluething/boostpo/internal/shared"
)

// Repository describes user persistence.
type Repository interface {
	List(ctx context.Context, req shared.PageRequest) ([]User, int64, error)
	Get(ctx context.Context, id int64) (User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const uniqueViolation = "23505"

const userColumns = `id, first_name, last_name, email, COALESCE(phone, ''), created_by, updated_by, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.CreatedBy, &u.UpdatedBy, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// List returns one page of users ordered by last then first name.
func (r *repository) List(ctx context.Context, req shared.PageRequest) ([]User, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY last_name ASC, first_name ASC, id ASC LIMIT $1 OFFSET $2`,
		req.Size, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, u)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	return u, err
}

// ExistsByEmail reports whether the email belongs to a user other than
// excludeID. Pass zero to match any user.
func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1 AND id<>$2)`, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, user User) (User, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO users (first_name, last_name, email, phone, created_by, updated_by, created_at, updated_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8) RETURNING id`,
		user.FirstName, user.LastName, user.Email, user.Phone,
		user.CreatedBy, user.UpdatedBy, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		return User{}, mapUniqueViolation(err)
	}
	return user, nil
}

func (r *repository) Update(ctx context.Context, user User) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET first_name=$1, last_name=$2, email=$3, phone=NULLIF($4, ''), updated_by=$5, updated_at=$6 WHERE id=$7`,
		user.FirstName, user.LastName, user.Email, user.Phone, user.UpdatedBy, user.UpdatedAt, user.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// mapUniqueViolation folds the unique index on users.email into the typed
// duplicate error, covering the race the service-level pre-check leaves
// open.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shared.ErrDuplicate
	}
	return err
}
