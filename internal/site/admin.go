package site

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dstclan/internal/model"
	"dstclan/internal/moderation"
	"dstclan/internal/session"
	"dstclan/pkg/client"

	"github.com/gin-gonic/gin"
)

const (
	noticeLoggedIn       = "Logged in"
	noticeLoggedOut      = "Logged out"
	noticeSessionExpired = "Your session is no longer valid, please log in again"
	noticeActionFailed   = "The action failed, please try again"
	noticeApproved       = "Listing approved"
	noticeRejected       = "Listing rejected"
	noticeDeleted        = "Listing deleted"
	noticeNewsPublished  = "News published"
	noticeNewsDeleted    = "News deleted"
)

// gate builds the session gate over the request's cookies
func (s *Site) gate(c *gin.Context) (*session.Gate, error) {
	return session.NewGate(&CookieStore{c: c, secure: s.secure}, s.api(c, nil).Auth())
}

// console returns the gate and an authenticated client, or redirects to the login form
func (s *Site) console(c *gin.Context) (*session.Gate, *client.Client, bool) {
	gate, err := s.gate(c)
	if err != nil || !gate.IsAuthenticated() {
		s.redirect(c, "/admin")
		return nil, nil, false
	}
	return gate, s.api(c, gate), true
}

// expired drops a token the API no longer accepts
func (s *Site) expired(c *gin.Context, gate *session.Gate, err error) bool {
	apiErr, ok := client.AsAPIError(err)
	if !ok || apiErr.StatusCode != http.StatusUnauthorized {
		return false
	}
	_ = gate.Logout()
	s.flashError(c, noticeSessionExpired)
	s.redirect(c, "/admin")
	return true
}

// Admin login form or the moderation console
func (s *Site) Admin(c *gin.Context) {
	gate, err := s.gate(c)
	if err != nil || !gate.IsAuthenticated() {
		s.render(c, "login", "Admin", gin.H{})
		return
	}

	ctx := c.Request.Context()
	api := s.api(c, gate)
	board := moderation.NewBoard(api.Listings())
	data := gin.H{"Categories": model.NewsCategories}

	if err := board.Refresh(ctx); err != nil {
		if s.expired(c, gate, err) {
			return
		}
		s.logger.Warn("failed to load moderation board", "error", err)
		data["Flash"] = &Flash{Kind: "error", Message: noticeLoadFailed}
	}
	data["Pending"] = board.Pending()
	data["Approved"] = board.Approved()

	news, err := api.News().List(ctx)
	if err != nil {
		s.logger.Warn("failed to load news", "error", err)
		news = []model.NewsItem{}
		data["Flash"] = &Flash{Kind: "error", Message: noticeLoadFailed}
	}
	data["News"] = news

	s.render(c, "admin", "Admin", data)
}

// Login checks the credentials through the API and keeps the token in a cookie
func (s *Site) Login(c *gin.Context) {
	gate, err := s.gate(c)
	if err != nil {
		s.flashError(c, session.GenericLoginError)
		s.redirect(c, "/admin")
		return
	}

	err = gate.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	var loginErr *session.LoginError
	switch {
	case err == nil:
		s.flashSuccess(c, noticeLoggedIn)
	case errors.As(err, &loginErr):
		s.flashError(c, loginErr.Message)
	default:
		s.logger.Error("failed to store session", "error", err)
		s.flashError(c, session.GenericLoginError)
	}
	s.redirect(c, "/admin")
}

// Logout clears the session cookie
func (s *Site) Logout(c *gin.Context) {
	if gate, err := s.gate(c); err == nil {
		_ = gate.Logout()
	}
	s.flashSuccess(c, noticeLoggedOut)
	s.redirect(c, "/admin")
}

// ModerateListing approves, rejects or deletes a listing
func (s *Site) ModerateListing(c *gin.Context) {
	gate, api, ok := s.console(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.flashError(c, noticeActionFailed)
		s.redirect(c, "/admin")
		return
	}

	ctx := c.Request.Context()
	board := moderation.NewBoard(api.Listings())

	var notice string
	switch c.Param("action") {
	case "approve":
		err, notice = board.Approve(ctx, id), noticeApproved
	case "reject":
		err, notice = board.Reject(ctx, id), noticeRejected
	case "delete":
		err, notice = board.Remove(ctx, id), noticeDeleted
	default:
		c.Status(http.StatusNotFound)
		return
	}

	if err != nil {
		if s.expired(c, gate, err) {
			return
		}
		s.logger.Info("moderation action failed", "id", id, "action", c.Param("action"), "error", err)
		s.flashError(c, noticeActionFailed)
	} else {
		s.flashSuccess(c, notice)
	}
	s.redirect(c, "/admin")
}

// CreateNews publishes a news item from the console form
func (s *Site) CreateNews(c *gin.Context) {
	gate, api, ok := s.console(c)
	if !ok {
		return
	}

	draft := model.NewsDraft{
		Title:       c.PostForm("title"),
		Category:    c.PostForm("category"),
		Content:     c.PostForm("content"),
		ImageURL:    c.PostForm("image_url"),
		IsImportant: c.PostForm("is_important") == "true",
	}
	if raw := strings.TrimSpace(c.PostForm("date")); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			s.flashError(c, noticeActionFailed)
			s.redirect(c, "/admin")
			return
		}
		draft.Date = date
	}

	if _, err := api.News().Create(c.Request.Context(), draft); err != nil {
		if s.expired(c, gate, err) {
			return
		}
		s.logger.Info("news publish failed", "error", err)
		s.flashError(c, noticeActionFailed)
	} else {
		s.flashSuccess(c, noticeNewsPublished)
	}
	s.redirect(c, "/admin")
}

// DeleteNews removes a news item
func (s *Site) DeleteNews(c *gin.Context) {
	gate, api, ok := s.console(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		err = api.News().Delete(c.Request.Context(), id)
	}

	if err != nil {
		if s.expired(c, gate, err) {
			return
		}
		s.flashError(c, noticeActionFailed)
	} else {
		s.flashSuccess(c, noticeNewsDeleted)
	}
	s.redirect(c, "/admin")
}
