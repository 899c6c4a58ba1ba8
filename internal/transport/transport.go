package transport

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivecanvas/designer-backend/internal/transport/middleware"
)

func InitRoutes(
	sessionHandler *SessionHandler,
	jobHandler *JobHandler,
	creditsHandler *CreditsHandler,
	storageHandler *StorageHandler,
) *gin.Engine {
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-User-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	api := router.Group("/api/v1")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
			sessions.POST("/:id/actions", sessionHandler.Dispatch)
			sessions.POST("/:id/undo", sessionHandler.Undo)
			sessions.POST("/:id/redo", sessionHandler.Redo)
			sessions.POST("/:id/strokes/undo", sessionHandler.UndoStroke)
			sessions.POST("/:id/strokes/redo", sessionHandler.RedoStroke)
			sessions.POST("/:id/keys", sessionHandler.KeyPress)
			sessions.POST("/:id/draw-to-edit/finalize", sessionHandler.FinalizeDrawToEdit)
			sessions.POST("/:id/baseline", sessionHandler.CommitBaseline)
			sessions.POST("/:id/export", sessionHandler.Export)

			sessions.POST("/:id/edits", jobHandler.SubmitEdit)
			sessions.POST("/:id/edits/:jobId/apply", jobHandler.ApplyResult)
		}

		api.GET("/edits", jobHandler.Status)

		credits := api.Group("/credits")
		{
			credits.GET("", creditsHandler.GetCredits)
			credits.POST("/topup", creditsHandler.Topup)
		}
	}

	router.POST("/upload", storageHandler.Upload)
	router.GET("/view", storageHandler.View)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "designer-backend",
		})
	})

	return router
}
