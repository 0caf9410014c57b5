package leave

import (
	"github.com/karanprajapat824/hr-system/internal/employee"
	"github.com/karanprajapat824/hr-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("/apply", middleware.Idempotency(rdb), handler.Apply)
		leaves.POST("/:id/cancel", handler.Cancel)
		leaves.GET("/history", handler.History)
		leaves.GET("/balance", handler.Balance)
		leaves.PUT("/:id/review", middleware.RoleMiddleware(employee.RoleAdmin), handler.Review)
	}
}
