package handler

import (
	"errors"
	"net/http"

	"dstclan/internal/constants"
	"dstclan/internal/model"
	"dstclan/internal/service"
	"dstclan/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes. Unknown errors are logged and hidden.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, service.ErrStatusNotListable):
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidStatus})
	case errors.Is(err, service.ErrCredentialsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrCredentialsRequired})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidCredentials})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrUnauthorized})
	case errors.Is(err, service.ErrRegistrationForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": constants.ErrRegistrationForbidden})
	case errors.Is(err, service.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": constants.ErrListingNotFound})
	case errors.Is(err, service.ErrContentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": constants.ErrNotFound})
	case errors.Is(err, service.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": constants.ErrIllegalTransition})
	case errors.Is(err, service.ErrUsernameExists):
		c.JSON(http.StatusConflict, gin.H{"error": constants.ErrUsernameExists})
	case errors.Is(err, service.ErrDuplicateContent):
		c.JSON(http.StatusConflict, gin.H{"error": constants.ErrDuplicateItem})
	default:
		log.Error("request failed", "path", c.Request.URL.Path, "method", c.Request.Method, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrInternalServer})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
