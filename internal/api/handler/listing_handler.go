package handler

import (
	"errors"
	"net/http"

	"dstclan/internal/constants"
	"dstclan/internal/middleware"
	"dstclan/internal/model"
	"dstclan/internal/service"
	"dstclan/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ListingHandler teammate listing endpoints
type ListingHandler struct {
	listingService *service.ListingService
	logger         *logger.Logger
}

// NewListingHandler creates a listing handler
func NewListingHandler(listingService *service.ListingService, logger *logger.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		logger:         logger,
	}
}

// GetListings lists listings by status
// @Router /api/v1/listings [get]
// @Param status query string false "approved (default) or pending; pending needs an admin token"
func (h *ListingHandler) GetListings(c *gin.Context) {
	status, err := model.ParseListingStatus(c.DefaultQuery("status", string(model.StatusApproved)))
	if err != nil || !status.Listable() {
		badRequest(c, constants.ErrInvalidStatus)
		return
	}

	if status == model.StatusPending {
		if _, ok := middleware.CurrentAdmin(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrUnauthorized})
			return
		}
	}

	listings, err := h.listingService.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// CreateListing submits a listing for moderation
// @Router /api/v1/listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req model.ListingSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, constants.ErrInvalidRequest)
		return
	}

	listing, err := h.listingService.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": listing.ID, "message": constants.SuccessSubmitted})
}

// UpdateListingStatus approves or rejects a pending listing
// @Router /api/v1/listings [put]
func (h *ListingHandler) UpdateListingStatus(c *gin.Context) {
	var req model.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, model.ErrUnknownStatus) {
			badRequest(c, constants.ErrInvalidDecision)
			return
		}
		badRequest(c, constants.ErrInvalidRequest)
		return
	}
	if req.ID <= 0 {
		badRequest(c, constants.ErrIDRequired)
		return
	}
	if req.Status != model.StatusApproved && req.Status != model.StatusRejected {
		badRequest(c, constants.ErrInvalidDecision)
		return
	}

	if err := h.listingService.SetStatus(c.Request.Context(), req.ID, req.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	h.logger.Info("listing status changed", "id", req.ID, "status", req.Status, "admin", adminName(admin))
	c.JSON(http.StatusOK, gin.H{"message": constants.SuccessStatusUpdated})
}

// DeleteListing removes a listing
// @Router /api/v1/listings [delete]
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.listingService.Remove(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": constants.SuccessDeleted})
}

// bindID reads {id} from the body and writes a 400 when it is missing
func bindID(c *gin.Context) (int64, bool) {
	var req model.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, constants.ErrInvalidRequest)
		return 0, false
	}
	if req.ID <= 0 {
		badRequest(c, constants.ErrIDRequired)
		return 0, false
	}
	return req.ID, true
}

func adminName(admin *model.Admin) string {
	if admin == nil {
		return ""
	}
	return admin.Username
}
