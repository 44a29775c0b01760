package repository

import (
	"context"
	"database/sql"
	"errors"

	"dstclan/internal/model"

	"github.com/jmoiron/sqlx"
)

// AdminRepository administrator accounts
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	GetByToken(ctx context.Context, token string) (*model.Admin, error)
	Create(ctx context.Context, admin *model.Admin) error
	UpdateToken(ctx context.Context, id int64, token string) error
	Count(ctx context.Context) (int64, error)
}

type adminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a MySQL-backed admin repository
func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) get(ctx context.Context, query string, arg interface{}) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// GetByUsername looks an admin up by login name
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	return r.get(ctx, `SELECT id, username, password_hash, token, created_at FROM admins WHERE username = ?`, username)
}

// GetByToken looks an admin up by session token
func (r *adminRepository) GetByToken(ctx context.Context, token string) (*model.Admin, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.get(ctx, `SELECT id, username, password_hash, token, created_at FROM admins WHERE token = ?`, token)
}

// Create inserts an admin; ErrDuplicate when the username is taken
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash, token) VALUES (?, ?, ?)`,
		admin.Username, admin.PasswordHash, admin.Token)
	if err != nil {
		return mapDuplicate(err)
	}
	admin.ID, err = result.LastInsertId()
	return err
}

// UpdateToken stores a newly issued token
func (r *adminRepository) UpdateToken(ctx context.Context, id int64, token string) error {
	return execAffectingOne(ctx, r.db, `UPDATE admins SET token = ? WHERE id = ?`, token, id)
}

// Count returns the number of admins
func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins`)
	return count, err
}
