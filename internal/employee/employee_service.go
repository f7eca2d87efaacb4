package employee

import (
	"context"
	"errors"
	"time"

	"leavedesk/internal/audit"
	employeeerrors "leavedesk/internal/employee/errors"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// recordAudit appends best-effort: a failed append is logged, never surfaced.
func (s *service) recordAudit(ctx context.Context, actorType string, actorID uuid.UUID, action, table string, targetID uuid.UUID) {
	if err := s.recorder.Record(ctx, actorType, actorID, action, table, targetID); err != nil {
		s.logger.Warn("employee audit record failed", zap.String("action", action), zap.Error(err))
	}
}

// actorFrom resolves the audited actor from the request context, falling
// back to the affected entity itself for unauthenticated self-service calls.
func actorFrom(ctx context.Context, fallbackType string, fallbackID uuid.UUID) (string, uuid.UUID) {
	actorType := contextutil.GetActorType(ctx)
	actorID, err := uuid.Parse(contextutil.GetActorID(ctx))
	if actorType == "" || err != nil {
		return fallbackType, fallbackID
	}
	return actorType, actorID
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("email", req.Email),
	)

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	actorType, actorID := actorFrom(ctx, audit.ActorEmployee, emp.ID)
	s.recordAudit(ctx, actorType, actorID, "Created employee account", "employees", emp.ID)

	s.logger.Info("create employee success", zap.String("employee_id", emp.ID.String()))
	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]EmployeeResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	emps, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(emps), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.Name != "" {
		emp.Name = req.Name
	}
	if req.Email != "" {
		emp.Email = req.Email
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	actorType, actorID := actorFrom(ctx, audit.ActorEmployee, emp.ID)
	s.recordAudit(ctx, actorType, actorID, "Updated employee information", "employees", emp.ID)

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	actorType, actorID := actorFrom(ctx, audit.ActorAdmin, uuid.Nil)
	s.recordAudit(ctx, actorType, actorID, "Deleted employee", "employees", emp.ID)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        emp.ID.String(),
		Name:      emp.Name,
		Email:     emp.Email,
		CreatedAt: emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: emp.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}
	return resp
}
