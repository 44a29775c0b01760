package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dstclan/config"
	"dstclan/internal/model"
	"dstclan/internal/repository"
	"dstclan/internal/repository/repositorytest"
	"dstclan/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	repos  repository.Repositories
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{LogLevel: "debug", CacheTTL: time.Minute, RateLimit: config.RateLimitConfig{SubmitPerMinute: 100}}
	log := logger.NewNop()
	repos := repositorytest.New()
	services := NewServices(cfg, log, repos, rdb)
	require.NoError(t, services.Auth.EnsureAdmin(context.Background(), "mod", "secret1"))

	ts := &testServer{router: SetupRouter(cfg, log, services, rdb), repos: repos}
	w := ts.do(t, http.MethodPost, "/api/v1/auth", map[string]string{"username": "mod", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	ts.token = decode[tokenBody](t, w).Token
	require.NotEmpty(t, ts.token)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type tokenBody struct {
	Token string `json:"token"`
}

type errorBody struct {
	Error string `json:"error"`
}

type idBody struct {
	ID int64 `json:"id"`
}

type listingsBody struct {
	Listings []model.Listing `json:"listings"`
}

func (ts *testServer) listingIDs(t *testing.T, status string) []int64 {
	t.Helper()
	w := ts.do(t, http.MethodGet, "/api/v1/listings?status="+status, nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ids := []int64{}
	for _, l := range decode[listingsBody](t, w).Listings {
		assert.Equal(t, status, string(l.Status))
		ids = append(ids, l.ID)
	}
	return ids
}

func (ts *testServer) seed(id int64, status model.ListingStatus) {
	ts.repos.Listings.(*repositorytest.Listings).Seed(model.Listing{
		ID: id, Title: "seeded", Description: "d", GameMode: "PVE", PlayerCount: "1-2",
		DiscordTag: "x#1", ImageURL: model.DefaultListingImage, Status: status,
	})
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dstclan_admin_logins_total")
}

func TestListings_FetchByStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(1, model.StatusPending)
	ts.seed(2, model.StatusApproved)
	ts.seed(3, model.StatusRejected)
	ts.seed(4, model.StatusApproved)

	assert.Equal(t, []int64{4, 2}, ts.listingIDs(t, "approved"))
	assert.Equal(t, []int64{1}, ts.listingIDs(t, "pending"))

	// default is approved, open to everyone
	w := ts.do(t, http.MethodGet, "/api/v1/listings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[listingsBody](t, w).Listings, 2)

	w = ts.do(t, http.MethodGet, "/api/v1/listings?status=pending", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/listings?status=rejected", nil, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodGet, "/api/v1/listings?status=archived", nil, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListings_SubmitScenario(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/listings", map[string]string{
		"title":        "Looking for raid team",
		"description":  "...",
		"game_mode":    "PVP",
		"player_count": "3-5",
		"discord_tag":  "foo#1234",
		"status":       "approved",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}](t, w)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.Message)

	assert.Empty(t, ts.listingIDs(t, "approved"))

	w = ts.do(t, http.MethodGet, "/api/v1/listings?status=pending", nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decode[listingsBody](t, w).Listings
	require.Len(t, pending, 1)
	l := pending[0]
	assert.Equal(t, created.ID, l.ID)
	assert.Equal(t, "Looking for raid team", l.Title)
	assert.Equal(t, "...", l.Description)
	assert.Equal(t, "PVP", l.GameMode)
	assert.Equal(t, "3-5", l.PlayerCount)
	assert.Equal(t, "foo#1234", l.DiscordTag)
	assert.Equal(t, model.StatusPending, l.Status)
	assert.False(t, l.CreatedAt.IsZero())
}

func TestListings_SubmitInvalid(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/listings", map[string]string{"title": " ", "game_mode": "PVP", "player_count": "3-5"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode[errorBody](t, w).Error)

	w = ts.do(t, http.MethodPost, "/api/v1/listings", "not an object", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListings_ApproveScenario(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(7, model.StatusPending)

	w := ts.do(t, http.MethodPut, "/api/v1/listings", map[string]interface{}{"id": 7, "status": "approved"}, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, ts.listingIDs(t, "approved"), int64(7))
	assert.NotContains(t, ts.listingIDs(t, "pending"), int64(7))
}

func TestListings_RejectTwice(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(5, model.StatusPending)

	w := ts.do(t, http.MethodPut, "/api/v1/listings", map[string]interface{}{"id": 5, "status": "rejected"}, ts.token)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, ts.listingIDs(t, "approved"), int64(5))
	assert.NotContains(t, ts.listingIDs(t, "pending"), int64(5))

	w = ts.do(t, http.MethodPut, "/api/v1/listings", map[string]interface{}{"id": 5, "status": "rejected"}, ts.token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPut, "/api/v1/listings", map[string]interface{}{"id": 99, "status": "approved"}, ts.token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPut, "/api/v1/listings", map[string]interface{}{"id": 5, "status": "pending"}, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/v1/listings", map[string]interface{}{"id": 5, "status": "published"}, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListings_Delete(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(3, model.StatusApproved)
	ts.seed(4, model.StatusPending)

	w := ts.do(t, http.MethodDelete, "/api/v1/listings", map[string]int64{"id": 3}, ts.token)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodDelete, "/api/v1/listings", map[string]int64{"id": 4}, ts.token)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, ts.listingIDs(t, "approved"))
	assert.Empty(t, ts.listingIDs(t, "pending"))

	w = ts.do(t, http.MethodDelete, "/api/v1/listings", map[string]int64{"id": 3}, ts.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(t, http.MethodDelete, "/api/v1/listings", map[string]int64{}, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListings_AdminOnlyWrites(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(7, model.StatusPending)

	w := ts.do(t, http.MethodPut, "/api/v1/listings", map[string]interface{}{"id": 7, "status": "approved"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ts.do(t, http.MethodDelete, "/api/v1/listings", map[string]int64{"id": 7}, "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// bearer form is accepted too
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/listings", bytes.NewBufferString(`{"id":7}`))
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListings_SubmitRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	cfg := &config.Config{CacheTTL: time.Minute, RateLimit: config.RateLimitConfig{SubmitPerMinute: 1}}
	ts := &testServer{router: SetupRouter(cfg, logger.NewNop(), NewServices(cfg, logger.NewNop(), repositorytest.New(), rdb), rdb)}

	body := map[string]string{"title": "t", "description": "d", "game_mode": "PVE", "player_count": "5+", "discord_tag": "a#1"}
	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/v1/listings", body, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(t, http.MethodPost, "/api/v1/listings", body, "").Code)
}

func TestListings_SubmitLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	cfg := &config.Config{CacheTTL: time.Minute, RateLimit: config.RateLimitConfig{SubmitPerMinute: 1}}
	router := SetupRouter(cfg, logger.NewNop(), NewServices(cfg, logger.NewNop(), repositorytest.New(), rdb), rdb)

	submit := func(remoteAddr, forwarded string) int {
		body := `{"title":"t","description":"d","game_mode":"PVE","player_count":"5+","discord_tag":"a#1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = remoteAddr
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	// a remote caller cannot pick its own bucket
	assert.Equal(t, http.StatusCreated, submit("203.0.113.5:5000", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, submit("203.0.113.5:5000", "10.0.0.2"))

	// the site relays visitors over loopback, each with its own bucket
	assert.Equal(t, http.StatusCreated, submit("127.0.0.1:6000", "198.51.100.1"))
	assert.Equal(t, http.StatusCreated, submit("127.0.0.1:6000", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, submit("127.0.0.1:6000", "198.51.100.1"))
}

func TestAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/auth", map[string]string{"username": "mod", "password": "nope", "action": "login"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, decode[errorBody](t, w).Error)

	w = ts.do(t, http.MethodPost, "/api/v1/auth", map[string]string{"username": "helper", "password": "secret2", "action": "register"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth", map[string]string{"username": "helper", "password": "secret2", "action": "register"}, ts.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[tokenBody](t, w).Token)

	w = ts.do(t, http.MethodPost, "/api/v1/auth", map[string]string{"username": "helper", "password": "secret2", "action": "register"}, ts.token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth", map[string]string{"username": "helper", "password": "secret2", "action": "reset"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContent_News(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/content?type=news", map[string]interface{}{
		"title": "Raid night", "date": "2025-11-02", "category": "Updates", "content": "Saturday", "is_important": true,
	}, ts.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[idBody](t, w).ID

	w = ts.do(t, http.MethodGet, "/api/v1/content?type=news", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	news := decode[struct {
		News []model.NewsItem `json:"news"`
	}](t, w).News
	require.Len(t, news, 1)
	assert.Equal(t, "2025-11-02", news[0].Date.String())
	assert.True(t, news[0].IsImportant)

	w = ts.do(t, http.MethodPut, "/api/v1/content?type=news", map[string]interface{}{"id": id, "title": "x"}, ts.token)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/content?type=news", map[string]string{"title": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/content?type=news", map[string]int64{"id": id}, ts.token)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodDelete, "/api/v1/content?type=news", map[string]int64{"id": id}, ts.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContent_VipAndClan(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/content?type=vip", map[string]interface{}{
		"tier_id": "basic", "name": "VIP Basic", "price": 299, "duration": "30 days", "features": []string{"Priority slot"},
	}, ts.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tierID := decode[idBody](t, w).ID

	w = ts.do(t, http.MethodPut, "/api/v1/content?type=vip", map[string]interface{}{
		"id": tierID, "tier_id": "basic", "name": "VIP Basic", "price": 199, "duration": "30 days",
	}, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/v1/content?type=vip", nil, "")
	tiers := decode[struct {
		VipTiers []model.VipTier `json:"vip_tiers"`
	}](t, w).VipTiers
	require.Len(t, tiers, 1)
	assert.Equal(t, 199, tiers[0].Price)

	w = ts.do(t, http.MethodPost, "/api/v1/content?type=clan", map[string]interface{}{
		"section": "rules", "title": "Rules", "content": "Be nice", "items": []string{"No griefing"},
	}, ts.token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/v1/content?type=clan", nil, "")
	sections := decode[struct {
		ClanInfo []model.ClanSection `json:"clan_info"`
	}](t, w).ClanInfo
	require.Len(t, sections, 1)
	assert.Equal(t, model.StringList{"No griefing"}, sections[0].Items)

	w = ts.do(t, http.MethodPut, "/api/v1/content?type=clan", map[string]interface{}{"title": "x", "section": "rules"}, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/content?type=shop", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
