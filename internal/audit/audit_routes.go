package audit

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetAll)
		logs.GET("/actor/:actor_type/:actor_id", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetByActor)
	}
}
