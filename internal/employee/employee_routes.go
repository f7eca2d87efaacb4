package employee

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	employees := r.Group("/employees")

	// Account creation is self-service; everything else needs a token.
	employees.POST("", handler.Create)

	authed := employees.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetAll)
		authed.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetByID)
		authed.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.Update)
		authed.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "delete"), handler.Delete)
	}
}
