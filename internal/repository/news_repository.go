package repository

import (
	"context"

	"dstclan/internal/model"

	"github.com/jmoiron/sqlx"
)

// NewsRepository news storage
type NewsRepository interface {
	List(ctx context.Context) ([]model.NewsItem, error)
	Create(ctx context.Context, item *model.NewsItem) error
	Delete(ctx context.Context, id int64) error
}

type newsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository creates a MySQL-backed news repository
func NewNewsRepository(db *sqlx.DB) NewsRepository {
	return &newsRepository{db: db}
}

// List returns all news, latest day first
func (r *newsRepository) List(ctx context.Context) ([]model.NewsItem, error) {
	items := []model.NewsItem{}
	query := `SELECT id, title, date, category, content, image_url, is_important, created_at
		FROM news ORDER BY date DESC, created_at DESC`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a news item
func (r *newsRepository) Create(ctx context.Context, item *model.NewsItem) error {
	query := `INSERT INTO news (title, date, category, content, image_url, is_important) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, item.Title, item.Date, item.Category, item.Content, item.ImageURL, item.IsImportant)
	if err != nil {
		return err
	}
	item.ID, err = result.LastInsertId()
	return err
}

// Delete removes a news item
func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM news WHERE id = ?`, id)
}
