package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"dstclan/internal/model"
	"dstclan/internal/repository/repositorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingService(t *testing.T) (*ListingService, *repositorytest.Listings) {
	_, rdb := newTestRedis(t)
	repo := repositorytest.NewListings()
	return NewListingService(repo, rdb, time.Minute, testLogger()), repo
}

func validSubmission() model.ListingSubmission {
	return model.ListingSubmission{
		Title:       "Looking for raid team",
		Description: "...",
		GameMode:    "PVP",
		PlayerCount: "3-5",
		DiscordTag:  "foo#1234",
	}
}

func TestListingService_SubmitIsPendingOnly(t *testing.T) {
	svc, _ := newListingService(t)
	ctx := context.Background()

	listing, err := svc.Submit(ctx, validSubmission())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, listing.Status)
	assert.Equal(t, model.DefaultListingImage, listing.ImageURL)

	approved, err := svc.List(ctx, model.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)

	pending, err := svc.List(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, listing.ID, pending[0].ID)
}

func TestListingService_SubmitInvalid(t *testing.T) {
	svc, repo := newListingService(t)
	sub := validSubmission()
	sub.GameMode = "Hardcore"

	_, err := svc.Submit(context.Background(), sub)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	pending, _ := repo.ListByStatus(context.Background(), model.StatusPending)
	assert.Empty(t, pending)
}

func TestListingService_ApproveInvalidatesCache(t *testing.T) {
	svc, repo := newListingService(t)
	ctx := context.Background()
	repo.Seed(model.Listing{ID: 7, Title: "t", Status: model.StatusPending})

	// prime the cache with an empty board
	approved, err := svc.List(ctx, model.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)

	require.NoError(t, svc.Approve(ctx, 7))

	approved, err = svc.List(ctx, model.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, int64(7), approved[0].ID)

	pending, err := svc.List(ctx, model.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

// heldListings pauses the first approved read after it has hit the store
type heldListings struct {
	*repositorytest.Listings
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (r *heldListings) ListByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	listings, err := r.Listings.ListByStatus(ctx, status)
	if status == model.StatusApproved {
		r.once.Do(func() {
			close(r.read)
			<-r.release
		})
	}
	return listings, err
}

func TestListingService_FillRacingApproveIsDiscarded(t *testing.T) {
	_, rdb := newTestRedis(t)
	repo := &heldListings{Listings: repositorytest.NewListings(), read: make(chan struct{}), release: make(chan struct{})}
	repo.Seed(model.Listing{ID: 7, Title: "t", Status: model.StatusPending})
	svc := NewListingService(repo, rdb, time.Minute, testLogger())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.List(ctx, model.StatusApproved)
	}()

	<-repo.read
	require.NoError(t, svc.Approve(ctx, 7))
	close(repo.release)
	<-done

	approved, err := svc.List(ctx, model.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, int64(7), approved[0].ID)
}

func TestListingService_Transitions(t *testing.T) {
	svc, repo := newListingService(t)
	ctx := context.Background()
	repo.Seed(model.Listing{ID: 1, Status: model.StatusPending})
	repo.Seed(model.Listing{ID: 2, Status: model.StatusApproved})

	require.NoError(t, svc.Reject(ctx, 1))
	assert.ErrorIs(t, svc.Reject(ctx, 1), ErrIllegalTransition)
	assert.ErrorIs(t, svc.Approve(ctx, 1), ErrIllegalTransition)
	assert.ErrorIs(t, svc.Reject(ctx, 2), ErrIllegalTransition)
	assert.ErrorIs(t, svc.Approve(ctx, 404), ErrListingNotFound)
	assert.ErrorIs(t, svc.SetStatus(ctx, 2, model.StatusPending), ErrIllegalTransition)

	l, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, l.Status)
}

func TestListingService_ListRejected(t *testing.T) {
	svc, _ := newListingService(t)
	_, err := svc.List(context.Background(), model.StatusRejected)
	assert.ErrorIs(t, err, ErrStatusNotListable)
}

func TestListingService_Remove(t *testing.T) {
	svc, repo := newListingService(t)
	ctx := context.Background()
	repo.Seed(model.Listing{ID: 3, Status: model.StatusApproved})

	_, err := svc.List(ctx, model.StatusApproved)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, 3))
	approved, err := svc.List(ctx, model.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)

	assert.ErrorIs(t, svc.Remove(ctx, 3), ErrListingNotFound)
}
