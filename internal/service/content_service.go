package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dstclan/internal/model"
	"dstclan/internal/repository"
	"dstclan/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ErrDuplicateContent a tier with the same tier_id exists
var ErrDuplicateContent = errors.New("content item already exists")

const (
	vipTiersKey = "content:vip"
	clanInfoKey = "content:clan"
)

// ContentService manages the VIP tiers and clan page sections
type ContentService struct {
	vipRepo  repository.VipTierRepository
	clanRepo repository.ClanInfoRepository
	cache    jsonCache
	logger   *logger.Logger
}

// NewContentService creates a content service
func NewContentService(vipRepo repository.VipTierRepository, clanRepo repository.ClanInfoRepository, redisClient redis.Cmdable, cacheTTL time.Duration, logger *logger.Logger) *ContentService {
	return &ContentService{
		vipRepo:  vipRepo,
		clanRepo: clanRepo,
		cache:    newJSONCache(redisClient, cacheTTL, logger),
		logger:   logger,
	}
}

func contentErr(kind string, id int64, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s %d", ErrContentNotFound, kind, id)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s", ErrDuplicateContent, kind)
	default:
		return err
	}
}

// VipTiers lists tiers by sort order
func (s *ContentService) VipTiers(ctx context.Context) ([]model.VipTier, error) {
	var cached []model.VipTier
	fill, hit := s.cache.get(ctx, "vip", vipTiersKey, &cached)
	if hit {
		return cached, nil
	}
	tiers, err := s.vipRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list vip tiers", "error", err)
		return nil, err
	}
	s.cache.set(ctx, fill, tiers)
	return tiers, nil
}

// CreateVipTier adds a tier
func (s *ContentService) CreateVipTier(ctx context.Context, tier *model.VipTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	if err := s.vipRepo.Create(ctx, tier); err != nil {
		return contentErr("vip tier", 0, err)
	}
	s.cache.invalidate(ctx, vipTiersKey)
	return nil
}

// UpdateVipTier replaces a tier's display fields; tier_id is fixed
func (s *ContentService) UpdateVipTier(ctx context.Context, tier *model.VipTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	if err := s.vipRepo.Update(ctx, tier); err != nil {
		return contentErr("vip tier", tier.ID, err)
	}
	s.cache.invalidate(ctx, vipTiersKey)
	return nil
}

// DeleteVipTier removes a tier
func (s *ContentService) DeleteVipTier(ctx context.Context, id int64) error {
	if err := s.vipRepo.Delete(ctx, id); err != nil {
		return contentErr("vip tier", id, err)
	}
	s.cache.invalidate(ctx, vipTiersKey)
	return nil
}

// ClanSections lists the clan page sections
func (s *ContentService) ClanSections(ctx context.Context) ([]model.ClanSection, error) {
	var cached []model.ClanSection
	fill, hit := s.cache.get(ctx, "clan", clanInfoKey, &cached)
	if hit {
		return cached, nil
	}
	sections, err := s.clanRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list clan info", "error", err)
		return nil, err
	}
	s.cache.set(ctx, fill, sections)
	return sections, nil
}

// CreateClanSection adds a section
func (s *ContentService) CreateClanSection(ctx context.Context, section *model.ClanSection) error {
	if err := section.Validate(); err != nil {
		return err
	}
	if err := s.clanRepo.Create(ctx, section); err != nil {
		return contentErr("clan section", 0, err)
	}
	s.cache.invalidate(ctx, clanInfoKey)
	return nil
}

// UpdateClanSection replaces title, content and items of a section
func (s *ContentService) UpdateClanSection(ctx context.Context, section *model.ClanSection) error {
	if err := section.Validate(); err != nil {
		return err
	}
	if err := s.clanRepo.Update(ctx, section); err != nil {
		return contentErr("clan section", section.ID, err)
	}
	s.cache.invalidate(ctx, clanInfoKey)
	return nil
}

// DeleteClanSection removes a section
func (s *ContentService) DeleteClanSection(ctx context.Context, id int64) error {
	if err := s.clanRepo.Delete(ctx, id); err != nil {
		return contentErr("clan section", id, err)
	}
	s.cache.invalidate(ctx, clanInfoKey)
	return nil
}
