package auth

import (
	"context"
	"errors"
	"time"

	"leavedesk/internal/admin"
	"leavedesk/internal/audit"
	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/employee"
	"leavedesk/internal/manager"
	"leavedesk/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Config carries the signing secret and the bootstrap admin credentials
// loaded from the environment at startup. The bootstrap admin lets the
// very first operator log in before any admin row exists.
type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	LoginAdmin(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginManager(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginEmployee(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type service struct {
	cfg          Config
	adminRepo    admin.Repository
	managerRepo  manager.Repository
	employeeRepo employee.Repository
	recorder     audit.Recorder
	logger       *zap.Logger
}

func NewService(cfg Config, adminRepo admin.Repository, managerRepo manager.Repository, employeeRepo employee.Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &service{
		cfg:          cfg,
		adminRepo:    adminRepo,
		managerRepo:  managerRepo,
		employeeRepo: employeeRepo,
		recorder:     recorder,
		logger:       l,
	}
}

func (s *service) LoginAdmin(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	adm, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.loginBootstrapAdmin(ctx, req)
		}
		return LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(req.Password)) != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	return s.issue(ctx, audit.ActorAdmin, adm.ID)
}

// loginBootstrapAdmin matches the environment-configured admin credentials.
// Its actor id is the nil UUID, which never collides with a stored admin.
func (s *service) loginBootstrapAdmin(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if s.cfg.AdminEmail == "" ||
		req.Email != s.cfg.AdminEmail ||
		req.Password != s.cfg.AdminPassword {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	return s.issue(ctx, audit.ActorAdmin, uuid.Nil)
}

func (s *service) LoginManager(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	mgr, err := s.managerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(mgr.PasswordHash), []byte(req.Password)) != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	return s.issue(ctx, audit.ActorManager, mgr.ID)
}

func (s *service) LoginEmployee(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	emp, err := s.employeeRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)) != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	return s.issue(ctx, audit.ActorEmployee, emp.ID)
}

func (s *service) issue(ctx context.Context, role string, actorID uuid.UUID) (LoginResponse, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"actor_id":   actorID.String(),
		"actor_role": role,
		"iat":        now.Unix(),
		"exp":        now.Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := s.recorder.Record(ctx, role, actorID, "Logged in", "sessions", actorID); err != nil {
		s.logger.Warn("login audit record failed", zap.Error(err))
	}

	s.logger.Info("login success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("actor_role", role),
		zap.String("actor_id", actorID.String()),
	)
	return LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ActorID:     actorID.String(),
		ActorRole:   role,
		ExpiresIn:   int(s.cfg.TokenTTL.Seconds()),
	}, nil
}
