package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dstclan/internal/metrics"
	"dstclan/internal/model"
	"dstclan/internal/repository"
	"dstclan/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrListingNotFound no listing with the given id
	ErrListingNotFound = errors.New("listing not found")
	// ErrIllegalTransition the listing is not pending any more
	ErrIllegalTransition = errors.New("illegal listing status transition")
	// ErrStatusNotListable rejected listings have no public view
	ErrStatusNotListable = errors.New("status cannot be listed")
)

const approvedListingsKey = "listings:approved"

// ListingService runs the moderation workflow of teammate listings
type ListingService struct {
	listingRepo repository.ListingRepository
	cache       jsonCache
	logger      *logger.Logger
}

// NewListingService creates a listing service
func NewListingService(listingRepo repository.ListingRepository, redisClient redis.Cmdable, cacheTTL time.Duration, logger *logger.Logger) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		cache:       newJSONCache(redisClient, cacheTTL, logger),
		logger:      logger,
	}
}

// List returns listings in the given status, newest first. The approved board is cached.
func (s *ListingService) List(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	if !status.Listable() {
		return nil, fmt.Errorf("%w: %s", ErrStatusNotListable, status)
	}

	var fill cacheFill
	if status == model.StatusApproved {
		var cached []model.Listing
		var hit bool
		if fill, hit = s.cache.get(ctx, "listings", approvedListingsKey, &cached); hit {
			return cached, nil
		}
	}

	listings, err := s.listingRepo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("failed to list listings", "status", status, "error", err)
		return nil, err
	}

	s.cache.set(ctx, fill, listings)
	return listings, nil
}

// Submit validates a public submission and stores it as pending
func (s *ListingService) Submit(ctx context.Context, sub model.ListingSubmission) (*model.Listing, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	listing := model.NewListing(sub)
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.logger.Error("failed to create listing", "error", err)
		return nil, err
	}

	metrics.ListingsSubmitted.Inc()
	s.logger.Info("listing submitted", "id", listing.ID, "game_mode", listing.GameMode)
	return listing, nil
}

// Approve publishes a pending listing
func (s *ListingService) Approve(ctx context.Context, id int64) error {
	return s.decide(ctx, "approve", id, model.StatusApproved)
}

// Reject hides a pending listing for good
func (s *ListingService) Reject(ctx context.Context, id int64) error {
	return s.decide(ctx, "reject", id, model.StatusRejected)
}

// SetStatus applies an admin decision given as a status value
func (s *ListingService) SetStatus(ctx context.Context, id int64, status model.ListingStatus) error {
	switch status {
	case model.StatusApproved:
		return s.Approve(ctx, id)
	case model.StatusRejected:
		return s.Reject(ctx, id)
	default:
		return fmt.Errorf("%w: cannot set %s", ErrIllegalTransition, status)
	}
}

func (s *ListingService) decide(ctx context.Context, action string, id int64, to model.ListingStatus) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.ModerationDecisions.WithLabelValues(action, "not_found").Inc()
			return fmt.Errorf("%w: %d", ErrListingNotFound, id)
		}
		metrics.ModerationDecisions.WithLabelValues(action, "error").Inc()
		return err
	}

	if !listing.Status.CanTransitionTo(to) {
		metrics.ModerationDecisions.WithLabelValues(action, "illegal").Inc()
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, listing.Status, to)
	}

	// conditional write; another admin may have decided in between
	if err := s.listingRepo.UpdateStatus(ctx, id, listing.Status, to); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			metrics.ModerationDecisions.WithLabelValues(action, "illegal").Inc()
			return fmt.Errorf("%w: listing %d changed concurrently", ErrIllegalTransition, id)
		}
		metrics.ModerationDecisions.WithLabelValues(action, "error").Inc()
		s.logger.Error("failed to update listing status", "id", id, "status", to, "error", err)
		return err
	}

	s.cache.invalidate(ctx, approvedListingsKey)
	metrics.ModerationDecisions.WithLabelValues(action, "ok").Inc()
	s.logger.Info("listing moderated", "id", id, "status", to)
	return nil
}

// Remove deletes a listing permanently, whatever its status
func (s *ListingService) Remove(ctx context.Context, id int64) error {
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.ModerationDecisions.WithLabelValues("delete", "not_found").Inc()
			return fmt.Errorf("%w: %d", ErrListingNotFound, id)
		}
		metrics.ModerationDecisions.WithLabelValues("delete", "error").Inc()
		s.logger.Error("failed to delete listing", "id", id, "error", err)
		return err
	}

	s.cache.invalidate(ctx, approvedListingsKey)
	metrics.ModerationDecisions.WithLabelValues("delete", "ok").Inc()
	s.logger.Info("listing deleted", "id", id)
	return nil
}
