package audit

import (
	"context"
	"time"

	auditerrors "leavedesk/internal/audit/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder is the write-side surface other modules depend on. Recording is
// best effort: callers log a failed append and carry on, the business
// mutation they were auditing stands.
type Recorder interface {
	Record(ctx context.Context, actorType string, actorID uuid.UUID, action, targetTable string, targetID uuid.UUID) error
}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Recorder
	List(ctx context.Context, skip, limit int) ([]AuditLogResponse, int64, error)
	ListByActor(ctx context.Context, actorType, actorID string, skip, limit int) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(
	ctx context.Context,
	actorType string,
	actorID uuid.UUID,
	action, targetTable string,
	targetID uuid.UUID,
) error {
	if !ValidActorType(actorType) {
		return auditerrors.ErrInvalidActorType
	}

	entry := &AuditLog{
		ID:          uuid.New(),
		ActorType:   actorType,
		ActorID:     actorID,
		Action:      action,
		TargetTable: targetTable,
		TargetID:    targetID,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("audit append failed",
			zap.String("actor_type", actorType),
			zap.String("actor_id", actorID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, skip, limit int) ([]AuditLogResponse, int64, error) {
	skip, limit = normalizePage(skip, limit)

	entries, err := s.repo.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(entries), total, nil
}

func (s *service) ListByActor(ctx context.Context, actorType, actorID string, skip, limit int) ([]AuditLogResponse, error) {
	if !ValidActorType(actorType) {
		return nil, auditerrors.ErrInvalidActorType
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, auditerrors.ErrInvalidActorID
	}
	skip, limit = normalizePage(skip, limit)

	entries, err := s.repo.FindByActor(ctx, actorType, actorID, skip, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
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

func mapToResponse(entry AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          entry.ID.String(),
		ActorType:   entry.ActorType,
		ActorID:     entry.ActorID.String(),
		Action:      entry.Action,
		TargetTable: entry.TargetTable,
		TargetID:    entry.TargetID.String(),
		Timestamp:   entry.Timestamp.Format(time.RFC3339),
	}
}

func mapToListResponse(entries []AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, len(entries))
	for i, entry := range entries {
		resp[i] = mapToResponse(entry)
	}
	return resp
}
