package admin

import (
	"context"
	"errors"
	"time"

	adminerrors "leavedesk/internal/admin/errors"
	"leavedesk/internal/audit"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=admin_service.go -destination=mock/admin_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAdminRequest) (AdminResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]AdminResponse, error)
	GetByID(ctx context.Context, id string) (AdminResponse, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("admin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) Create(ctx context.Context, req CreateAdminRequest) (AdminResponse, error) {
	s.logger.Debug("create admin requested", zap.String("email", req.Email))

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return AdminResponse{}, adminerrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AdminResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AdminResponse{}, err
	}

	a := &Admin{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if isUniqueViolation(err) {
			return AdminResponse{}, adminerrors.ErrEmailTaken
		}
		s.logger.Error("create admin persist failed", zap.Error(err))
		return AdminResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.ActorAdmin, a.ID, "Created admin account", "admins", a.ID); err != nil {
		s.logger.Warn("admin audit record failed", zap.Error(err))
	}

	s.logger.Info("create admin success", zap.String("admin_id", a.ID.String()))
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]AdminResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	admins, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]AdminResponse, len(admins))
	for i, a := range admins {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AdminResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AdminResponse{}, adminerrors.ErrInvalidAdminID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdminResponse{}, adminerrors.ErrAdminNotFound
		}
		return AdminResponse{}, err
	}
	return mapToResponse(*a), nil
}

func mapToResponse(a Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
