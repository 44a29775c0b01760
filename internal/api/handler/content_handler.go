package handler

import (
	"net/http"

	"dstclan/internal/constants"
	"dstclan/internal/model"
	"dstclan/internal/service"
	"dstclan/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ContentHandler news, VIP tiers and clan info, selected by ?type=
type ContentHandler struct {
	newsService    *service.NewsService
	contentService *service.ContentService
	logger         *logger.Logger
}

// NewContentHandler creates a content handler
func NewContentHandler(newsService *service.NewsService, contentService *service.ContentService, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{
		newsService:    newsService,
		contentService: contentService,
		logger:         logger,
	}
}

// contentType reads ?type= and writes a 400 for unknown types
func contentType(c *gin.Context) (string, bool) {
	switch t := c.Query("type"); t {
	case model.ContentNews, model.ContentVip, model.ContentClan:
		return t, true
	default:
		badRequest(c, constants.ErrUnknownContentType)
		return "", false
	}
}

// GetContent lists one content type
// @Router /api/v1/content [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	kind, ok := contentType(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	switch kind {
	case model.ContentNews:
		items, err := h.newsService.List(ctx)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": items})
	case model.ContentVip:
		tiers, err := h.contentService.VipTiers(ctx)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vip_tiers": tiers})
	case model.ContentClan:
		sections, err := h.contentService.ClanSections(ctx)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clan_info": sections})
	}
}

// CreateContent adds an item of one content type
// @Router /api/v1/content [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	kind, ok := contentType(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var id int64
	switch kind {
	case model.ContentNews:
		var draft model.NewsDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			badRequest(c, constants.ErrInvalidRequest)
			return
		}
		item, err := h.newsService.Create(ctx, draft)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		id = item.ID
	case model.ContentVip:
		var tier model.VipTier
		if err := c.ShouldBindJSON(&tier); err != nil {
			badRequest(c, constants.ErrInvalidRequest)
			return
		}
		if err := h.contentService.CreateVipTier(ctx, &tier); err != nil {
			respondError(c, h.logger, err)
			return
		}
		id = tier.ID
	case model.ContentClan:
		var section model.ClanSection
		if err := c.ShouldBindJSON(&section); err != nil {
			badRequest(c, constants.ErrInvalidRequest)
			return
		}
		if err := h.contentService.CreateClanSection(ctx, &section); err != nil {
			respondError(c, h.logger, err)
			return
		}
		id = section.ID
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": constants.SuccessCreated})
}

// UpdateContent replaces a VIP tier or clan section; news cannot be edited
// @Router /api/v1/content [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	kind, ok := contentType(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	switch kind {
	case model.ContentNews:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": constants.ErrMethodNotAllowed})
		return
	case model.ContentVip:
		var tier model.VipTier
		if err := c.ShouldBindJSON(&tier); err != nil {
			badRequest(c, constants.ErrInvalidRequest)
			return
		}
		if tier.ID <= 0 {
			badRequest(c, constants.ErrIDRequired)
			return
		}
		if err := h.contentService.UpdateVipTier(ctx, &tier); err != nil {
			respondError(c, h.logger, err)
			return
		}
	case model.ContentClan:
		var section model.ClanSection
		if err := c.ShouldBindJSON(&section); err != nil {
			badRequest(c, constants.ErrInvalidRequest)
			return
		}
		if section.ID <= 0 {
			badRequest(c, constants.ErrIDRequired)
			return
		}
		if err := h.contentService.UpdateClanSection(ctx, &section); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": constants.SuccessUpdated})
}

// DeleteContent removes an item by id
// @Router /api/v1/content [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	kind, ok := contentType(c)
	if !ok {
		return
	}
	id, ok := bindID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var err error
	switch kind {
	case model.ContentNews:
		err = h.newsService.Delete(ctx, id)
	case model.ContentVip:
		err = h.contentService.DeleteVipTier(ctx, id)
	case model.ContentClan:
		err = h.contentService.DeleteClanSection(ctx, id)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": constants.SuccessDeleted})
}
