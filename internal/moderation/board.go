// Package moderation drives the admin side of the listing workflow.
package moderation

import (
	"context"
	"sort"
	"sync"

	"dstclan/internal/model"

	"golang.org/x/sync/errgroup"
)

// ListingsAPI the listings endpoint as the board uses it
type ListingsAPI interface {
	FetchByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error)
	Create(ctx context.Context, sub model.ListingSubmission) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.ListingStatus) error
	Delete(ctx context.Context, id int64) error
}

// Board the admin's view of pending and approved listings.
//
// Every mutation stamps the id with a sequence number. A refresh only
// overwrites ids not mutated since the refresh started, so a slow response
// can never undo a newer local decision.
type Board struct {
	api ListingsAPI

	mu       sync.Mutex
	seq      uint64
	listings map[int64]model.Listing
	mutated  map[int64]uint64
	running  map[uint64]int // refreshes in flight, by start sequence
}

// NewBoard creates an empty board; call Refresh to load it
func NewBoard(api ListingsAPI) *Board {
	return &Board{
		api:      api,
		listings: map[int64]model.Listing{},
		mutated:  map[int64]uint64{},
		running:  map[uint64]int{},
	}
}

// Pending listings awaiting a decision, newest first
func (b *Board) Pending() []model.Listing {
	return b.byStatus(model.StatusPending)
}

// Approved published listings, newest first
func (b *Board) Approved() []model.Listing {
	return b.byStatus(model.StatusApproved)
}

func (b *Board) byStatus(status model.ListingStatus) []model.Listing {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []model.Listing{}
	for _, l := range b.listings {
		if l.Status == status {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Refresh fetches both partitions concurrently and merges them.
// On error the board keeps its previous state.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	started := b.seq
	b.running[started]++
	b.mu.Unlock()

	var pending, approved []model.Listing
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pending, err = b.api.FetchByStatus(gctx, model.StatusPending)
		return err
	})
	g.Go(func() error {
		var err error
		approved, err = b.api.FetchByStatus(gctx, model.StatusApproved)
		return err
	})
	if err := g.Wait(); err != nil {
		b.mu.Lock()
		b.finish(started)
		b.mu.Unlock()
		return err
	}

	b.merge(started, append(pending, approved...))
	return nil
}

func (b *Board) merge(started uint64, fetched []model.Listing) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[int64]struct{}, len(fetched))
	for _, l := range fetched {
		seen[l.ID] = struct{}{}
		if b.mutated[l.ID] > started {
			continue
		}
		b.listings[l.ID] = l
	}

	// anything the server no longer lists is gone, unless touched locally since
	for id := range b.listings {
		if _, ok := seen[id]; ok || b.mutated[id] > started {
			continue
		}
		delete(b.listings, id)
	}
	b.finish(started)
}

// finish ends the refresh started at started and forgets the stamps no
// running refresh could still overwrite. Callers hold mu.
func (b *Board) finish(started uint64) {
	b.running[started]--
	if b.running[started] <= 0 {
		delete(b.running, started)
	}

	oldest := b.seq
	for s := range b.running {
		if s < oldest {
			oldest = s
		}
	}
	for id, stamp := range b.mutated {
		if stamp <= oldest {
			delete(b.mutated, id)
		}
	}
}

// stamp records a local mutation of id and applies it
func (b *Board) stamp(id int64, apply func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.mutated[id] = b.seq
	apply()
}

// Approve publishes a pending listing, then refreshes
func (b *Board) Approve(ctx context.Context, id int64) error {
	if err := b.api.UpdateStatus(ctx, id, model.StatusApproved); err != nil {
		return err
	}
	b.stamp(id, func() {
		if l, ok := b.listings[id]; ok {
			l.Status = model.StatusApproved
			b.listings[id] = l
		}
	})
	return b.Refresh(ctx)
}

// Reject hides a pending listing from both partitions, then refreshes
func (b *Board) Reject(ctx context.Context, id int64) error {
	if err := b.api.UpdateStatus(ctx, id, model.StatusRejected); err != nil {
		return err
	}
	b.stamp(id, func() { delete(b.listings, id) })
	return b.Refresh(ctx)
}

// Remove deletes a listing for good, then refreshes
func (b *Board) Remove(ctx context.Context, id int64) error {
	if err := b.api.Delete(ctx, id); err != nil {
		return err
	}
	b.stamp(id, func() { delete(b.listings, id) })
	return b.Refresh(ctx)
}

// Submit sends a new listing for moderation. The submitter has no view of
// pending listings, so nothing is refreshed.
func (b *Board) Submit(ctx context.Context, sub model.ListingSubmission) (int64, error) {
	return b.api.Create(ctx, sub)
}
