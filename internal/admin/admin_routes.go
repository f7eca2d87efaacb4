package admin

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	admins := r.Group("/admins")
	admins.Use(middleware.AuthMiddleware())
	{
		admins.POST("", middleware.RBACAuthorize(rbacService, "admin", "create"), handler.Create)
		admins.GET("", middleware.RBACAuthorize(rbacService, "admin", "read"), handler.GetAll)
		admins.GET("/:id", middleware.RBACAuthorize(rbacService, "admin", "read"), handler.GetByID)
	}
}
