package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	approvalerrors "leavedesk/internal/approval/errors"
	"leavedesk/internal/audit"
	"leavedesk/internal/balance"
	balanceerrors "leavedesk/internal/balance/errors"
	"leavedesk/internal/events"
	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"
	managererrors "leavedesk/internal/manager/errors"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	Decide(ctx context.Context, managerID string, req DecideRequest) (ApprovalResponse, error)
	GetByLeave(ctx context.Context, leaveID string) (ApprovalResponse, error)
	GetByManager(ctx context.Context, managerID string, skip, limit int) ([]ApprovalResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	leaveRepo   leave.Repository
	balanceRepo balance.Repository
	outboxRepo  kafka.OutboxRepository
	recorder    audit.Recorder
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveRepo leave.Repository,
	balanceRepo balance.Repository,
	outboxRepo kafka.OutboxRepository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		leaveRepo:   leaveRepo,
		balanceRepo: balanceRepo,
		outboxRepo:  outboxRepo,
		recorder:    recorder,
		logger:      l,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Decide settles a pending leave request in one transaction: the status flip,
// the approval row, the balance debit on approval, and the outbox event all
// commit together or not at all. The guarded status update decides the winner
// between concurrent deciders; the loser rolls back untouched.
func (s *service) Decide(ctx context.Context, managerID string, req DecideRequest) (ApprovalResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("manager_id", managerID),
		zap.String("leave_id", req.LeaveID),
		zap.String("decision", req.Decision),
	)

	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return ApprovalResponse{}, managererrors.ErrInvalidManagerID
	}
	if req.Decision != leave.StatusApproved && req.Decision != leave.StatusRejected {
		return ApprovalResponse{}, approvalerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return ApprovalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	leaveTx := s.leaveRepo.WithTx(tx)
	balanceTx := s.balanceRepo.WithTx(tx)

	exists, err := qtx.ManagerExists(ctx, managerID)
	if err != nil {
		s.logger.Error("decide leave manager check failed", zap.Error(err))
		return ApprovalResponse{}, err
	}
	if !exists {
		return ApprovalResponse{}, approvalerrors.ErrApproverNotFound
	}

	lv, err := leaveTx.FindByID(ctx, req.LeaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApprovalResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return ApprovalResponse{}, err
	}
	if lv.Status != leave.StatusPending {
		return ApprovalResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	rows, err := leaveTx.TransitionFromPending(ctx, req.LeaveID, req.Decision)
	if err != nil {
		s.logger.Error("decide leave status transition failed", zap.Error(err))
		return ApprovalResponse{}, err
	}
	if rows == 0 {
		// Another decider got here between the read and the update.
		return ApprovalResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	days := lv.InclusiveDays()
	if req.Decision == leave.StatusApproved {
		if err := s.debitBalance(ctx, balanceTx, lv, days); err != nil {
			return ApprovalResponse{}, err
		}
	}

	ap := &Approval{
		ID:         uuid.New(),
		LeaveID:    lv.ID,
		ApprovedBy: managerUUID,
		Decision:   req.Decision,
		ApprovedAt: time.Now().UTC(),
	}
	if err := qtx.Create(ctx, ap); err != nil {
		if isUniqueViolation(err) {
			return ApprovalResponse{}, leaveerrors.ErrAlreadyProcessed
		}
		s.logger.Error("decide leave approval persist failed", zap.Error(err))
		return ApprovalResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, lv, ap, days); err != nil {
		s.logger.Error("decide leave outbox enqueue failed", zap.Error(err))
		return ApprovalResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return ApprovalResponse{}, err
	}

	action := "Approved leave request"
	if req.Decision == leave.StatusRejected {
		action = "Rejected leave request"
	}
	if err := s.recorder.Record(ctx, audit.ActorManager, managerUUID, action, "leaves", lv.ID); err != nil {
		s.logger.Warn("decide leave audit record failed", zap.Error(err))
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", lv.ID.String()),
		zap.String("manager_id", managerID),
		zap.String("decision", req.Decision),
		zap.Int("days", days),
	)
	return mapApprovalToResponse(*ap), nil
}

// debitBalance consumes days from the employee's balance for the leave type.
// A missing balance row aborts the decision; an existing row without enough
// remaining fails the guarded update and aborts as well.
func (s *service) debitBalance(ctx context.Context, balanceTx balance.Repository, lv *leave.Leave, days int) error {
	rows, err := balanceTx.Debit(ctx, lv.EmployeeID.String(), lv.TypeID.String(), days)
	if err != nil {
		s.logger.Error("decide leave balance debit failed", zap.Error(err))
		return err
	}
	if rows > 0 {
		return nil
	}

	if _, err := balanceTx.FindByEmployeeAndType(ctx, lv.EmployeeID.String(), lv.TypeID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return balanceerrors.ErrBalanceNotFound
		}
		return err
	}
	return balanceerrors.ErrInsufficientBalance
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *sql.Tx, lv *leave.Leave, ap *Approval, days int) error {
	eventType := events.EventTypeLeaveApproved
	if ap.Decision == leave.StatusRejected {
		eventType = events.EventTypeLeaveRejected
	}

	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:  eventType,
		LeaveID:    lv.ID.String(),
		EmployeeID: lv.EmployeeID.String(),
		TypeID:     lv.TypeID.String(),
		ManagerID:  ap.ApprovedBy.String(),
		Decision:   ap.Decision,
		Days:       days,
		OccurredAt: ap.ApprovedAt,
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   lv.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetByLeave(ctx context.Context, leaveID string) (ApprovalResponse, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return ApprovalResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	ap, err := s.repo.FindByLeave(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApprovalResponse{}, approvalerrors.ErrApprovalNotFound
		}
		return ApprovalResponse{}, err
	}
	return mapApprovalToResponse(*ap), nil
}

func (s *service) GetByManager(ctx context.Context, managerID string, skip, limit int) ([]ApprovalResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, managererrors.ErrInvalidManagerID
	}
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	aps, err := s.repo.FindByManager(ctx, managerID, skip, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]ApprovalResponse, len(aps))
	for i, ap := range aps {
		resp[i] = mapApprovalToResponse(ap)
	}
	return resp, nil
}

func mapApprovalToResponse(ap Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:         ap.ID.String(),
		LeaveID:    ap.LeaveID.String(),
		ApprovedBy: ap.ApprovedBy.String(),
		Decision:   ap.Decision,
		ApprovedAt: ap.ApprovedAt.Format(time.RFC3339),
	}
}
