package client

import (
	"context"
	"net/http"
	"net/url"

	"dstclan/internal/model"
)

var newsQuery = url.Values{"type": {model.ContentNews}}

// NewsClient /content?type=news endpoint. News has no update.
type NewsClient struct {
	c *Client
}

// List returns all news, latest first
func (n *NewsClient) List(ctx context.Context) ([]model.NewsItem, error) {
	var out struct {
		News []model.NewsItem `json:"news"`
	}
	if err := n.c.do(ctx, http.MethodGet, "/content", newsQuery, nil, &out); err != nil {
		return nil, err
	}
	if out.News == nil {
		out.News = []model.NewsItem{}
	}
	return out.News, nil
}

// Create publishes a news item and returns its id
func (n *NewsClient) Create(ctx context.Context, draft model.NewsDraft) (int64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}
	var out idBody
	if err := n.c.do(ctx, http.MethodPost, "/content", newsQuery, draft, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Delete removes a news item
func (n *NewsClient) Delete(ctx context.Context, id int64) error {
	return n.c.do(ctx, http.MethodDelete, "/content", newsQuery, model.IDRequest{ID: id}, nil)
}
