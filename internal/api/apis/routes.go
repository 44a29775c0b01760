package apis

import (
	"dstclan/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes routes open to visitors. submitLimit guards listing submission.
func RegisterPublicRoutes(v1 *gin.RouterGroup, listingHandler *handler.ListingHandler, authHandler *handler.AuthHandler, contentHandler *handler.ContentHandler, submitLimit gin.HandlerFunc) {
	listings := v1.Group("/listings")
	{
		// pending needs an identified admin, checked in the handler
		listings.GET("", listingHandler.GetListings)
		listings.POST("", submitLimit, listingHandler.CreateListing)
	}

	v1.POST("/auth", authHandler.Auth)
	v1.GET("/content", contentHandler.GetContent)
}
