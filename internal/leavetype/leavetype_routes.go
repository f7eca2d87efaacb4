package leavetype

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.POST("", middleware.RBACAuthorize(rbacService, "leavetype", "create"), handler.Create)
		types.GET("", handler.GetAll)
		types.GET("/:id", handler.GetByID)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leavetype", "delete"), handler.Delete)
	}
}
