package handler

import (
	"net/http"
	"strings"

	"dstclan/internal/constants"
	"dstclan/internal/middleware"
	"dstclan/internal/model"
	"dstclan/internal/service"
	"dstclan/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler admin login and registration
type AuthHandler struct {
	authService *service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(authService *service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Auth dispatches on the action field; login is the default
// @Router /api/v1/auth [post]
func (h *AuthHandler) Auth(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, constants.ErrInvalidRequest)
		return
	}

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "", model.AuthActionLogin:
		h.login(c, req)
	case model.AuthActionRegister:
		h.register(c, req)
	default:
		badRequest(c, constants.ErrUnsupportedAuthAction)
	}
}

func (h *AuthHandler) login(c *gin.Context, req model.AuthRequest) {
	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "message": constants.SuccessLogin})
}

func (h *AuthHandler) register(c *gin.Context, req model.AuthRequest) {
	ctx := c.Request.Context()
	if _, err := h.authService.Register(ctx, middleware.AdminToken(c), req.Username, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "message": constants.SuccessRegister})
}
