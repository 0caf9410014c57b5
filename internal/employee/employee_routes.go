package employee

import (
	"github.com/karanprajapat824/hr-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RoleMiddleware(RoleAdmin), handler.GetAll)
		employees.GET("/profile", handler.Profile)
	}
}
