package repository

import (
	"context"
	"database/sql"
	"errors"

	"dstclan/internal/model"

	"github.com/jmoiron/sqlx"
)

const listingColumns = `id, title, description, game_mode, player_count, discord_tag, image_url, status, created_at, updated_at`

// ListingRepository listing storage
type ListingRepository interface {
	ListByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error)
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	Create(ctx context.Context, listing *model.Listing) error
	UpdateStatus(ctx context.Context, id int64, from, to model.ListingStatus) error
	Delete(ctx context.Context, id int64) error
}

type listingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a MySQL-backed listing repository
func NewListingRepository(db *sqlx.DB) ListingRepository {
	return &listingRepository{db: db}
}

// ListByStatus returns every listing in the status, newest first
func (r *listingRepository) ListByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	listings := []model.Listing{}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = ? ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &listings, query, status); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetByID returns a single listing
func (r *listingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	var listing model.Listing
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
	if err := r.db.GetContext(ctx, &listing, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// Create inserts the listing and fills its id and timestamps
func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	query := `INSERT INTO listings (title, description, game_mode, player_count, discord_tag, image_url, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	result, err := r.db.ExecContext(ctx, query,
		listing.Title, listing.Description, listing.GameMode, listing.PlayerCount,
		listing.DiscordTag, listing.ImageURL, listing.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*listing = *created
	return nil
}

// UpdateStatus moves a listing from one status to another; ErrConflict when it is no longer in from
func (r *listingRepository) UpdateStatus(ctx context.Context, id int64, from, to model.ListingStatus) error {
	query := `UPDATE listings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`
	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

// Delete removes a listing permanently
func (r *listingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
