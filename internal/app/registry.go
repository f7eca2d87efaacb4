package app

import (
	"database/sql"

	"leavedesk/internal/admin"
	"leavedesk/internal/approval"
	"leavedesk/internal/audit"
	"leavedesk/internal/auth"
	"leavedesk/internal/balance"
	"leavedesk/internal/employee"
	"leavedesk/internal/leave"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/manager"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	outboxRepo kafka.OutboxRepository,
	authCfg auth.Config,
) error {
	// --- Repositories ---
	adminRepo := admin.NewRepository(gormDB)
	managerRepo := manager.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	adminService := admin.NewService(adminRepo, auditService)
	managerService := manager.NewService(managerRepo, auditService)
	employeeService := employee.NewService(employeeRepo, auditService)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, auditService, rdb)
	leaveService := leave.NewService(leaveRepo, auditService)
	balanceService := balance.NewService(balanceRepo, auditService)
	approvalService := approval.NewService(db, approvalRepo, leaveRepo, balanceRepo, outboxRepo, auditService)
	authService := auth.NewService(authCfg, adminRepo, managerRepo, employeeRepo, auditService)

	// --- Handlers ---
	adminHandler := admin.NewHandler(adminService)
	managerHandler := manager.NewHandler(managerService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveHandler := leave.NewHandler(leaveService)
	balanceHandler := balance.NewHandler(balanceService)
	approvalHandler := approval.NewHandler(approvalService, rdb)
	auditHandler := audit.NewHandler(auditService)
	authHandler := auth.NewHandler(authService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		admin.RegisterRoutes(api, adminHandler, rbacService)
		manager.RegisterRoutes(api, managerHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb)
		audit.RegisterRoutes(api, auditHandler, rbacService)
	}

	return nil
}
