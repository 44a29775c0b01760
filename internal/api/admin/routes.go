package admin

import (
	"dstclan/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes moderation and content management routes. The group must carry AdminAuth.
func RegisterAdminRoutes(router *gin.RouterGroup, listingHandler *handler.ListingHandler, contentHandler *handler.ContentHandler) {
	listings := router.Group("/listings")
	{
		listings.PUT("", listingHandler.UpdateListingStatus)
		listings.DELETE("", listingHandler.DeleteListing)
	}

	content := router.Group("/content")
	{
		content.POST("", contentHandler.CreateContent)
		content.PUT("", contentHandler.UpdateContent)
		content.DELETE("", contentHandler.DeleteContent)
	}
}
