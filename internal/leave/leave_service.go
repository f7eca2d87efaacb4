package leave

import (
	"context"
	"errors"
	"time"

	"leavedesk/internal/audit"
	employeeerrors "leavedesk/internal/employee/errors"
	leaveerrors "leavedesk/internal/leave/errors"
	leavetypeerrors "leavedesk/internal/leavetype/errors"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, skip, limit int) ([]LeaveResponse, int64, error)
	GetPending(ctx context.Context, skip, limit int) ([]LeaveResponse, int64, error)
	GetByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

// parseTime accepts full RFC3339 timestamps and bare dates.
func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (s *service) recordAudit(ctx context.Context, action string, targetID uuid.UUID) {
	actorType := contextutil.GetActorType(ctx)
	actorID, err := uuid.Parse(contextutil.GetActorID(ctx))
	if actorType == "" || err != nil {
		actorType, actorID = audit.ActorEmployee, targetID
	}
	if err := s.recorder.Record(ctx, actorType, actorID, action, "leaves", targetID); err != nil {
		s.logger.Warn("leave audit record failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", req.EmployeeID),
	)

	start, err := parseTime(req.StartTime)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := parseTime(req.EndTime)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if !start.Before(end) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	if ok, err := s.repo.EmployeeExists(ctx, req.EmployeeID); err != nil {
		return LeaveResponse{}, err
	} else if !ok {
		return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	if ok, err := s.repo.LeaveTypeExists(ctx, req.TypeID); err != nil {
		return LeaveResponse{}, err
	} else if !ok {
		return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
	}

	lv := &Leave{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		TypeID:     uuid.MustParse(req.TypeID),
		StartTime:  start,
		EndTime:    end,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := s.repo.Create(ctx, lv); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.recordAudit(ctx, "Submitted leave request", lv.ID)

	s.logger.Info("create leave success",
		zap.String("leave_id", lv.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapLeaveToResponse(*lv), nil
}

func (s *service) GetAll(ctx context.Context, skip, limit int) ([]LeaveResponse, int64, error) {
	skip, limit = normalizePage(skip, limit)
	leaves, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return mapLeavesToResponse(leaves), total, nil
}

func (s *service) GetPending(ctx context.Context, skip, limit int) ([]LeaveResponse, int64, error) {
	skip, limit = normalizePage(skip, limit)
	leaves, err := s.repo.FindPending(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountPending(ctx)
	if err != nil {
		return nil, 0, err
	}
	return mapLeavesToResponse(leaves), total, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	skip, limit = normalizePage(skip, limit)
	leaves, err := s.repo.FindByEmployee(ctx, employeeID, skip, limit)
	if err != nil {
		return nil, err
	}
	return mapLeavesToResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	lv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapLeaveToResponse(*lv), nil
}

// Delete withdraws a request. Approved and rejected requests are part of the
// decision history and cannot be removed this way.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	lv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	if lv.Status != StatusPending {
		return leaveerrors.ErrNotPending
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}

	s.recordAudit(ctx, "Withdrew leave request", lv.ID)

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return skip, limit
}

func mapLeaveToResponse(lv Leave) LeaveResponse {
	return LeaveResponse{
		ID:         lv.ID.String(),
		EmployeeID: lv.EmployeeID.String(),
		TypeID:     lv.TypeID.String(),
		StartTime:  lv.StartTime.Format(time.RFC3339),
		EndTime:    lv.EndTime.Format(time.RFC3339),
		Reason:     lv.Reason,
		Status:     lv.Status,
		Days:       lv.InclusiveDays(),
		CreatedAt:  lv.CreatedAt.Format(time.RFC3339),
	}
}

func mapLeavesToResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, lv := range leaves {
		resp[i] = mapLeaveToResponse(lv)
	}
	return resp
}
