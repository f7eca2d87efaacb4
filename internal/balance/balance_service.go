package balance

import (
	"context"
	"errors"
	"time"

	"leavedesk/internal/audit"
	balanceerrors "leavedesk/internal/balance/errors"
	employeeerrors "leavedesk/internal/employee/errors"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]BalanceResponse, error)
	GetByID(ctx context.Context, id string) (BalanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) Create(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("create balance requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", req.EmployeeID),
		zap.String("type_id", req.TypeID),
	)

	if req.TotalAllocated <= 0 {
		return BalanceResponse{}, balanceerrors.ErrInvalidAllocation
	}

	if _, err := s.repo.FindByEmployeeAndType(ctx, req.EmployeeID, req.TypeID); err == nil {
		return BalanceResponse{}, balanceerrors.ErrBalanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BalanceResponse{}, err
	}

	bal := &LeaveBalance{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(req.EmployeeID),
		TypeID:         uuid.MustParse(req.TypeID),
		TotalAllocated: req.TotalAllocated,
		TotalUsed:      0,
		Remaining:      req.TotalAllocated,
	}

	if err := s.repo.Create(ctx, bal); err != nil {
		if isUniqueViolation(err) {
			return BalanceResponse{}, balanceerrors.ErrBalanceExists
		}
		s.logger.Error("create balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.recordAudit(ctx, "Allocated leave balance", bal.ID)

	s.logger.Info("create balance success",
		zap.String("balance_id", bal.ID.String()),
		zap.Int("total_allocated", bal.TotalAllocated),
	)
	return mapBalanceToResponse(*bal), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]BalanceResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	bals, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return mapBalancesToResponse(bals), nil
}

func (s *service) GetByID(ctx context.Context, id string) (BalanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidBalanceID
	}
	bal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapBalanceToResponse(*bal), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	bals, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapBalancesToResponse(bals), nil
}

func (s *service) recordAudit(ctx context.Context, action string, targetID uuid.UUID) {
	actorType := contextutil.GetActorType(ctx)
	actorID, err := uuid.Parse(contextutil.GetActorID(ctx))
	if actorType == "" || err != nil {
		actorType, actorID = audit.ActorAdmin, uuid.Nil
	}
	if err := s.recorder.Record(ctx, actorType, actorID, action, "leave_balances", targetID); err != nil {
		s.logger.Warn("balance audit record failed", zap.String("action", action), zap.Error(err))
	}
}

func mapBalanceToResponse(bal LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:             bal.ID.String(),
		EmployeeID:     bal.EmployeeID.String(),
		TypeID:         bal.TypeID.String(),
		TotalAllocated: bal.TotalAllocated,
		TotalUsed:      bal.TotalUsed,
		Remaining:      bal.Remaining,
		CreatedAt:      bal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      bal.UpdatedAt.Format(time.RFC3339),
	}
}

func mapBalancesToResponse(bals []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(bals))
	for i, bal := range bals {
		resp[i] = mapBalanceToResponse(bal)
	}
	return resp
}
