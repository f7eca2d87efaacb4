package audit

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *AuditLog) error
	FindAll(ctx context.Context, skip, limit int) ([]AuditLog, error)
	FindByActor(ctx context.Context, actorType, actorID string, skip, limit int) ([]AuditLog, error)
	CountAll(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	tdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: tdb}
}

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAll(ctx context.Context, skip, limit int) ([]AuditLog, error) {
	var entries []AuditLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Offset(skip).
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByActor(ctx context.Context, actorType, actorID string, skip, limit int) ([]AuditLog, error) {
	var entries []AuditLog
	err := r.db.WithContext(ctx).
		Where("actor_type = ?", actorType).
		Where("actor_id = ?", actorID).
		Order("timestamp DESC").
		Offset(skip).
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AuditLog{}).
		Count(&count).Error
	return count, err
}
