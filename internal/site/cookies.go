package site

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"dstclan/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie          = "flash"
	sessionMaxAge        = 30 * 24 * 60 * 60
	defaultClientTimeout = 10 * time.Second
)

// CookieStore keeps the admin token in an HttpOnly cookie named admin_token
type CookieStore struct {
	c      *gin.Context
	secure bool
}

// Load reads the token cookie
func (s *CookieStore) Load() (string, error) {
	token, err := s.c.Cookie(session.StorageKey)
	if errors.Is(err, http.ErrNoCookie) {
		return "", nil
	}
	return token, err
}

// Save sets the token cookie
func (s *CookieStore) Save(token string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(session.StorageKey, token, sessionMaxAge, "/", "", s.secure, true)
	return nil
}

// Clear expires the token cookie
func (s *CookieStore) Clear() error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(session.StorageKey, "", -1, "/", "", s.secure, true)
	return nil
}

// Flash a one-shot notice shown on the next page
type Flash struct {
	Kind    string
	Message string
}

func (s *Site) flash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+"|"+message, 60, "/", "", s.secure, true)
}

func (s *Site) flashSuccess(c *gin.Context, message string) { s.flash(c, "success", message) }

func (s *Site) flashError(c *gin.Context, message string) { s.flash(c, "error", message) }

// takeFlash returns the pending notice and clears it
func (s *Site) takeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", s.secure, true)

	kind, message, ok := strings.Cut(raw, "|")
	if !ok || (kind != "success" && kind != "error") {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}
