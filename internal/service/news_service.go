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

// ErrContentNotFound no content item with the given id
var ErrContentNotFound = errors.New("content item not found")

const newsListKey = "content:news"

// NewsService publishes news items. Items cannot be edited once created.
type NewsService struct {
	newsRepo repository.NewsRepository
	cache    jsonCache
	logger   *logger.Logger
}

// NewNewsService creates a news service
func NewNewsService(newsRepo repository.NewsRepository, redisClient redis.Cmdable, cacheTTL time.Duration, logger *logger.Logger) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		cache:    newJSONCache(redisClient, cacheTTL, logger),
		logger:   logger,
	}
}

// List returns all news, latest first
func (s *NewsService) List(ctx context.Context) ([]model.NewsItem, error) {
	var cached []model.NewsItem
	fill, hit := s.cache.get(ctx, "news", newsListKey, &cached)
	if hit {
		return cached, nil
	}

	items, err := s.newsRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list news", "error", err)
		return nil, err
	}
	s.cache.set(ctx, fill, items)
	return items, nil
}

// Create validates and stores a news item
func (s *NewsService) Create(ctx context.Context, draft model.NewsDraft) (*model.NewsItem, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	item := model.NewNewsItem(draft)
	if err := s.newsRepo.Create(ctx, item); err != nil {
		s.logger.Error("failed to create news", "error", err)
		return nil, err
	}

	s.cache.invalidate(ctx, newsListKey)
	s.logger.Info("news published", "id", item.ID, "category", item.Category)
	return item, nil
}

// Delete removes a news item
func (s *NewsService) Delete(ctx context.Context, id int64) error {
	if err := s.newsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: news %d", ErrContentNotFound, id)
		}
		s.logger.Error("failed to delete news", "id", id, "error", err)
		return err
	}
	s.cache.invalidate(ctx, newsListKey)
	return nil
}
