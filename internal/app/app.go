package app

import (
	"context"
	"os"
	"time"

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
	"leavedesk/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates the schema, and registers
// every module's routes on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&admin.Admin{},
		&manager.Manager{},
		&employee.Employee{},
		&leavetype.LeaveType{},
		&leave.Leave{},
		&balance.LeaveBalance{},
		&approval.Approval{},
		&audit.AuditLog{},
	); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(db)
	if err := outboxRepo.Migrate(context.Background()); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	authCfg := auth.Config{
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      tokenTTLFromEnv(),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	return registerModules(router, db, gormDB, rdb, outboxRepo, authCfg)
}

func tokenTTLFromEnv() time.Duration {
	raw := os.Getenv("TOKEN_TTL")
	if raw == "" {
		return 24 * time.Hour
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		zap.L().Warn("invalid TOKEN_TTL, using default", zap.String("raw", raw))
		return 24 * time.Hour
	}
	return ttl
}
