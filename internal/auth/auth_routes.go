package auth

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitByIP(5, 10))
	{
		authGroup.POST("/login/admin", handler.LoginAdmin)
		authGroup.POST("/login/manager", handler.LoginManager)
		authGroup.POST("/login/employee", handler.LoginEmployee)
	}
}
