package repository

import (
	"context"

	"dstclan/internal/model"

	"github.com/jmoiron/sqlx"
)

// VipTierRepository VIP tier storage
type VipTierRepository interface {
	List(ctx context.Context) ([]model.VipTier, error)
	Create(ctx context.Context, tier *model.VipTier) error
	Update(ctx context.Context, tier *model.VipTier) error
	Delete(ctx context.Context, id int64) error
}

// ClanInfoRepository clan page section storage
type ClanInfoRepository interface {
	List(ctx context.Context) ([]model.ClanSection, error)
	Create(ctx context.Context, section *model.ClanSection) error
	Update(ctx context.Context, section *model.ClanSection) error
	Delete(ctx context.Context, id int64) error
}

type vipTierRepository struct {
	db *sqlx.DB
}

// NewVipTierRepository creates a MySQL-backed VIP tier repository
func NewVipTierRepository(db *sqlx.DB) VipTierRepository {
	return &vipTierRepository{db: db}
}

func (r *vipTierRepository) List(ctx context.Context) ([]model.VipTier, error) {
	tiers := []model.VipTier{}
	query := `SELECT id, tier_id, name, price, duration, color, is_popular, features, sort_order FROM vip_tiers ORDER BY sort_order, id`
	if err := r.db.SelectContext(ctx, &tiers, query); err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *vipTierRepository) Create(ctx context.Context, tier *model.VipTier) error {
	query := `INSERT INTO vip_tiers (tier_id, name, price, duration, color, is_popular, features, sort_order)
		VALUES (:tier_id, :name, :price, :duration, :color, :is_popular, :features, :sort_order)`
	result, err := r.db.NamedExecContext(ctx, query, tier)
	if err != nil {
		return mapDuplicate(err)
	}
	tier.ID, err = result.LastInsertId()
	return err
}

func (r *vipTierRepository) Update(ctx context.Context, tier *model.VipTier) error {
	query := `UPDATE vip_tiers SET name = :name, price = :price, duration = :duration, color = :color,
		is_popular = :is_popular, features = :features, sort_order = :sort_order, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`
	return namedExecAffectingOne(ctx, r.db, query, tier)
}

func (r *vipTierRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM vip_tiers WHERE id = ?`, id)
}

type clanInfoRepository struct {
	db *sqlx.DB
}

// NewClanInfoRepository creates a MySQL-backed clan info repository
func NewClanInfoRepository(db *sqlx.DB) ClanInfoRepository {
	return &clanInfoRepository{db: db}
}

func (r *clanInfoRepository) List(ctx context.Context) ([]model.ClanSection, error) {
	sections := []model.ClanSection{}
	if err := r.db.SelectContext(ctx, &sections, `SELECT id, section, title, content, items FROM clan_info ORDER BY id`); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *clanInfoRepository) Create(ctx context.Context, section *model.ClanSection) error {
	query := `INSERT INTO clan_info (section, title, content, items) VALUES (:section, :title, :content, :items)`
	result, err := r.db.NamedExecContext(ctx, query, section)
	if err != nil {
		return err
	}
	section.ID, err = result.LastInsertId()
	return err
}

func (r *clanInfoRepository) Update(ctx context.Context, section *model.ClanSection) error {
	query := `UPDATE clan_info SET title = :title, content = :content, items = :items, updated_at = CURRENT_TIMESTAMP WHERE id = :id`
	return namedExecAffectingOne(ctx, r.db, query, section)
}

func (r *clanInfoRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM clan_info WHERE id = ?`, id)
}
