package balance

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.POST("", middleware.RBACAuthorize(rbacService, "balance", "create"), handler.Create)
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetAll)
		balances.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetByEmployee)
		balances.GET("/:id", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetByID)
	}
}
