package client

import (
	"context"
	"net/http"
	"net/url"

	"dstclan/internal/model"
)

// ListingsClient /listings endpoint
type ListingsClient struct {
	c *Client
}

// FetchByStatus returns the listings in one status. Pending needs an admin token.
func (l *ListingsClient) FetchByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	var out struct {
		Listings []model.Listing `json:"listings"`
	}
	q := url.Values{"status": {string(status)}}
	if err := l.c.do(ctx, http.MethodGet, "/listings", q, nil, &out); err != nil {
		return nil, err
	}
	if out.Listings == nil {
		out.Listings = []model.Listing{}
	}
	return out.Listings, nil
}

// Create submits a listing for moderation and returns its id.
// The submission is validated locally before anything is sent.
func (l *ListingsClient) Create(ctx context.Context, sub model.ListingSubmission) (int64, error) {
	if err := sub.Validate(); err != nil {
		return 0, err
	}
	var out idBody
	if err := l.c.do(ctx, http.MethodPost, "/listings", nil, sub, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// UpdateStatus approves or rejects a listing
func (l *ListingsClient) UpdateStatus(ctx context.Context, id int64, status model.ListingStatus) error {
	return l.c.do(ctx, http.MethodPut, "/listings", nil, model.StatusUpdate{ID: id, Status: status}, nil)
}

// Delete removes a listing permanently
func (l *ListingsClient) Delete(ctx context.Context, id int64) error {
	return l.c.do(ctx, http.MethodDelete, "/listings", nil, model.IDRequest{ID: id}, nil)
}
