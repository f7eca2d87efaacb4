package manager

import (
	"context"
	"errors"
	"time"

	"leavedesk/internal/audit"
	managererrors "leavedesk/internal/manager/errors"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=manager_service.go -destination=mock/manager_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateManagerRequest) (ManagerResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]ManagerResponse, error)
	GetByID(ctx context.Context, id string) (ManagerResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("manager.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("manager.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) recordAudit(ctx context.Context, fallbackID uuid.UUID, action string, targetID uuid.UUID) {
	actorType := contextutil.GetActorType(ctx)
	actorID, err := uuid.Parse(contextutil.GetActorID(ctx))
	if actorType == "" || err != nil {
		actorType, actorID = audit.ActorManager, fallbackID
	}
	if err := s.recorder.Record(ctx, actorType, actorID, action, "managers", targetID); err != nil {
		s.logger.Warn("manager audit record failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, req CreateManagerRequest) (ManagerResponse, error) {
	s.logger.Debug("create manager requested", zap.String("email", req.Email))

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return ManagerResponse{}, managererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ManagerResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return ManagerResponse{}, err
	}

	m := &Manager{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if isUniqueViolation(err) {
			return ManagerResponse{}, managererrors.ErrEmailTaken
		}
		s.logger.Error("create manager persist failed", zap.Error(err))
		return ManagerResponse{}, err
	}

	s.recordAudit(ctx, m.ID, "Created manager account", m.ID)

	s.logger.Info("create manager success", zap.String("manager_id", m.ID.String()))
	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]ManagerResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	managers, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(managers), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ManagerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ManagerResponse{}, managererrors.ErrInvalidManagerID
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ManagerResponse{}, managererrors.ErrManagerNotFound
		}
		return ManagerResponse{}, err
	}
	return mapToResponse(*m), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return managererrors.ErrInvalidManagerID
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return managererrors.ErrManagerNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete manager persist failed", zap.String("manager_id", id), zap.Error(err))
		return err
	}

	s.recordAudit(ctx, uuid.Nil, "Deleted manager", m.ID)
	return nil
}

func mapToResponse(m Manager) ManagerResponse {
	return ManagerResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(managers []Manager) []ManagerResponse {
	resp := make([]ManagerResponse, len(managers))
	for i, m := range managers {
		resp[i] = mapToResponse(m)
	}
	return resp
}
