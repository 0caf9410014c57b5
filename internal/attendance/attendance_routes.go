package attendance

import (
	"github.com/karanprajapat824/hr-system/internal/employee"
	"github.com/karanprajapat824/hr-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in", handler.CheckIn)
		attendances.POST("/check-out", handler.CheckOut)
		attendances.GET("/history", handler.SelfHistory)
		attendances.GET("", middleware.RoleMiddleware(employee.RoleAdmin), handler.AllHistory)
	}
}
