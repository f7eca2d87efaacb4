package approval

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	approvals := r.Group("/approvals")
	approvals.Use(middleware.AuthMiddleware())
	{
		approvals.POST("",
			middleware.RBACAuthorize(rbacService, "approval", "decide"),
			middleware.Idempotency(rdb),
			handler.Decide,
		)
		approvals.GET("/leave/:leave_id", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.GetByLeave)
		approvals.GET("/manager/:manager_id", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.GetByManager)
	}
}
