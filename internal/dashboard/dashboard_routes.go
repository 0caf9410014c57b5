package dashboard

import (
	"github.com/karanprajapat824/hr-system/internal/employee"
	"github.com/karanprajapat824/hr-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	dash := r.Group("/dashboard")
	dash.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(employee.RoleAdmin))
	{
		dash.GET("", handler.Overview)
	}
}
