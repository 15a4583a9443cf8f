package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vod-packager/repository"
)

// listVideos serves the read-only catalog listing, newest first.
func listVideos(repo repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		videos, err := repo.ListVideos(c.Request.Context())
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to list videos")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to list videos",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"videos":  videos,
			"count":   len(videos),
		})
	}
}

// corsMiddleware mirrors the bucket's permissive read-only CORS posture for
// the listing endpoint.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
