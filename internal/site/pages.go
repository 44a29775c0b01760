package site

import (
	"strings"

	"dstclan/internal/model"

	"github.com/gin-gonic/gin"
)

// Notices shown to visitors. Failures never expose details.
const (
	noticeLoadFailed   = "Could not load data, please try again later"
	noticeSubmitted    = "Your listing was sent for moderation"
	noticeSubmitFailed = "Could not submit your listing"
	noticeVipRedirect  = "Redirecting to payment for "
	noticeVipUnknown   = "This VIP tier is not available"
)

// Home approved listings and the submission form
func (s *Site) Home(c *gin.Context) {
	data := gin.H{"GameModes": model.GameModes, "PlayerCounts": model.PlayerCounts}

	listings, err := s.api(c, nil).Listings().FetchByStatus(c.Request.Context(), model.StatusApproved)
	if err != nil {
		s.logger.Warn("failed to load listings", "error", err)
		listings = []model.Listing{}
		data["Flash"] = &Flash{Kind: "error", Message: noticeLoadFailed}
	}
	data["Listings"] = listings
	s.render(c, "home", "Find teammates", data)
}

// SubmitListing posts the form to the API as a pending listing
func (s *Site) SubmitListing(c *gin.Context) {
	sub := model.ListingSubmission{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		GameMode:    c.PostForm("game_mode"),
		PlayerCount: c.PostForm("player_count"),
		DiscordTag:  c.PostForm("discord_tag"),
		ImageURL:    c.PostForm("image_url"),
	}

	if _, err := s.api(c, nil).Listings().Create(c.Request.Context(), sub); err != nil {
		s.logger.Info("listing submission failed", "error", err)
		s.flashError(c, noticeSubmitFailed)
	} else {
		s.flashSuccess(c, noticeSubmitted)
	}
	s.redirect(c, "/")
}

// News the news feed
func (s *Site) News(c *gin.Context) {
	data := gin.H{}
	news, err := s.api(c, nil).News().List(c.Request.Context())
	if err != nil {
		s.logger.Warn("failed to load news", "error", err)
		news = []model.NewsItem{}
		data["Flash"] = &Flash{Kind: "error", Message: noticeLoadFailed}
	}
	data["News"] = news
	s.render(c, "news", "News", data)
}

// Vip the VIP tiers
func (s *Site) Vip(c *gin.Context) {
	data := gin.H{}
	tiers, err := s.api(c, nil).Content().VipTiers(c.Request.Context())
	if err != nil {
		s.logger.Warn("failed to load vip tiers", "error", err)
		tiers = []model.VipTier{}
		data["Flash"] = &Flash{Kind: "error", Message: noticeLoadFailed}
	}
	data["Tiers"] = tiers
	s.render(c, "vip", "VIP", data)
}

// SelectVip acknowledges a tier choice. Payment is handled elsewhere.
func (s *Site) SelectVip(c *gin.Context) {
	tierID := strings.TrimSpace(c.PostForm("tier_id"))

	tiers, err := s.api(c, nil).Content().VipTiers(c.Request.Context())
	if err != nil {
		s.flashError(c, noticeLoadFailed)
		s.redirect(c, "/vip")
		return
	}
	for _, t := range tiers {
		if t.TierID == tierID {
			s.flashSuccess(c, noticeVipRedirect+t.Name)
			s.redirect(c, "/vip")
			return
		}
	}
	s.flashError(c, noticeVipUnknown)
	s.redirect(c, "/vip")
}

// Clan the clan information sections
func (s *Site) Clan(c *gin.Context) {
	data := gin.H{}
	sections, err := s.api(c, nil).Content().ClanSections(c.Request.Context())
	if err != nil {
		s.logger.Warn("failed to load clan info", "error", err)
		sections = []model.ClanSection{}
		data["Flash"] = &Flash{Kind: "error", Message: noticeLoadFailed}
	}
	data["Sections"] = sections
	s.render(c, "clan", "About DST", data)
}
