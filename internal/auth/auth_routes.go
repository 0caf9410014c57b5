package auth

import (
	"github.com/karanprajapat824/hr-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", middleware.RateLimitByIP(0.1, 3), handler.SignUp)
		auth.POST("/signin", middleware.RateLimitByIP(0.08, 5), handler.SignIn)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByEmployee(2, 5), handler.Me)
		auth.GET("/user-info", middleware.AuthMiddleware(), handler.UserInfo)
	}
}
