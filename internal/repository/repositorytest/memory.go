// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"dstclan/internal/model"
	"dstclan/internal/repository"
)

// New returns a fresh set of in-memory repositories
func New() repository.Repositories {
	return repository.Repositories{
		Listings: NewListings(),
		News:     &News{items: map[int64]model.NewsItem{}},
		VipTiers: &VipTiers{items: map[int64]model.VipTier{}},
		Clan:     &Clan{items: map[int64]model.ClanSection{}},
		Admins:   &Admins{items: map[int64]model.Admin{}},
	}
}

// Listings in-memory ListingRepository
type Listings struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.Listing
	clock  time.Time
}

// NewListings creates an empty listing store
func NewListings() *Listings {
	return &Listings{items: map[int64]model.Listing{}, clock: time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)}
}

// Seed stores a listing with an explicit id
func (r *Listings) Seed(l model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.tick()
	}
	r.items[l.ID] = l
	if l.ID > r.nextID {
		r.nextID = l.ID
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic
func (r *Listings) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *Listings) ListByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Listing{}
	for _, l := range r.items {
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
	return out, nil
}

func (r *Listings) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r *Listings) Create(ctx context.Context, listing *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	listing.ID = r.nextID
	listing.CreatedAt = r.tick()
	listing.UpdatedAt = listing.CreatedAt
	r.items[listing.ID] = *listing
	return nil
}

func (r *Listings) UpdateStatus(ctx context.Context, id int64, from, to model.ListingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok || l.Status != from {
		return repository.ErrConflict
	}
	l.Status = to
	l.UpdatedAt = r.tick()
	r.items[id] = l
	return nil
}

func (r *Listings) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// News in-memory NewsRepository
type News struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.NewsItem
}

func (r *News) List(ctx context.Context) ([]model.NewsItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.NewsItem, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date.Time) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date.Time)
	})
	return out, nil
}

func (r *News) Create(ctx context.Context, item *model.NewsItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	item.ID = r.nextID
	item.CreatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

func (r *News) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// VipTiers in-memory VipTierRepository
type VipTiers struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.VipTier
}

func (r *VipTiers) List(ctx context.Context) ([]model.VipTier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.VipTier, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *VipTiers) Create(ctx context.Context, tier *model.VipTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.items {
		if t.TierID == tier.TierID {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	tier.ID = r.nextID
	r.items[tier.ID] = *tier
	return nil
}

func (r *VipTiers) Update(ctx context.Context, tier *model.VipTier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[tier.ID]
	if !ok {
		return repository.ErrNotFound
	}
	tier.TierID = existing.TierID
	r.items[tier.ID] = *tier
	return nil
}

func (r *VipTiers) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Clan in-memory ClanInfoRepository
type Clan struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.ClanSection
}

func (r *Clan) List(ctx context.Context) ([]model.ClanSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ClanSection, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Clan) Create(ctx context.Context, section *model.ClanSection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	section.ID = r.nextID
	r.items[section.ID] = *section
	return nil
}

func (r *Clan) Update(ctx context.Context, section *model.ClanSection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[section.ID]
	if !ok {
		return repository.ErrNotFound
	}
	section.Section = existing.Section
	r.items[section.ID] = *section
	return nil
}

func (r *Clan) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Admins in-memory AdminRepository
type Admins struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.Admin
}

func (r *Admins) find(match func(model.Admin) bool) (*model.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if match(a) {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Admins) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	return r.find(func(a model.Admin) bool { return a.Username == username })
}

func (r *Admins) GetByToken(ctx context.Context, token string) (*model.Admin, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return r.find(func(a model.Admin) bool { return a.Token == token })
}

func (r *Admins) Create(ctx context.Context, admin *model.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if a.Username == admin.Username {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	admin.ID = r.nextID
	admin.CreatedAt = time.Now()
	r.items[admin.ID] = *admin
	return nil
}

func (r *Admins) UpdateToken(ctx context.Context, id int64, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Token = token
	r.items[id] = a
	return nil
}

func (r *Admins) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}
