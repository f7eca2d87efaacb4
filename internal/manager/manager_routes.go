package manager

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	managers := r.Group("/managers")
	managers.Use(middleware.AuthMiddleware())
	{
		managers.POST("", middleware.RBACAuthorize(rbacService, "manager", "create"), handler.Create)
		managers.GET("", middleware.RBACAuthorize(rbacService, "manager", "read"), handler.GetAll)
		managers.GET("/:id", middleware.RBACAuthorize(rbacService, "manager", "read"), handler.GetByID)
		managers.DELETE("/:id", middleware.RBACAuthorize(rbacService, "manager", "delete"), handler.Delete)
	}
}
