// Package apitest runs the real API over in-memory repositories and miniredis.
package apitest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"dstclan/config"
	"dstclan/internal/api"
	"dstclan/internal/model"
	"dstclan/internal/repository"
	"dstclan/internal/repository/repositorytest"
	"dstclan/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Admin credentials of the bootstrap admin
const (
	AdminUsername = "mod"
	AdminPassword = "secret1"
)

// Server a running API
type Server struct {
	*httptest.Server
	Repos    repository.Repositories
	Services *api.Services
}

// BaseURL API root of the server
func (s *Server) BaseURL() string {
	return s.URL + "/api/v1"
}

// SeedListing stores a listing with a fixed id
func (s *Server) SeedListing(id int64, status model.ListingStatus) {
	s.Repos.Listings.(*repositorytest.Listings).Seed(model.Listing{
		ID: id, Title: "seeded", Description: "d", GameMode: model.GameModePVE, PlayerCount: "1-2",
		DiscordTag: "x#1", ImageURL: model.DefaultListingImage, Status: status,
	})
}

// AdminToken logs the bootstrap admin in through the service
func (s *Server) AdminToken(t *testing.T) string {
	t.Helper()
	token, err := s.Services.Auth.Login(context.Background(), AdminUsername, AdminPassword)
	require.NoError(t, err)
	return token
}

// WithSubmitLimit enables the per-visitor submission limit, off by default
func WithSubmitLimit(perMinute int) func(*config.Config) {
	return func(cfg *config.Config) { cfg.RateLimit.SubmitPerMinute = perMinute }
}

// New starts an API server with a bootstrap admin. It is closed with the test.
func New(t *testing.T, opts ...func(*config.Config)) *Server {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{LogLevel: "debug", CacheTTL: time.Minute}
	for _, opt := range opts {
		opt(cfg)
	}
	log := logger.NewNop()
	repos := repositorytest.New()
	services := api.NewServices(cfg, log, repos, rdb)
	require.NoError(t, services.Auth.EnsureAdmin(context.Background(), AdminUsername, AdminPassword))

	srv := httptest.NewServer(api.SetupRouter(cfg, log, services, rdb))
	t.Cleanup(func() {
		srv.Close()
		rdb.Close()
	})
	return &Server{Server: srv, Repos: repos, Services: services}
}
