package approval

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, ap *Approval) error
	FindByLeave(ctx context.Context, leaveID string) (*Approval, error)
	FindByManager(ctx context.Context, managerID string, skip, limit int) ([]Approval, error)
	ManagerExists(ctx context.Context, managerID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, ap *Approval) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *repository) FindByLeave(ctx context.Context, leaveID string) (*Approval, error) {
	var ap Approval
	err := r.db.WithContext(ctx).First(&ap, "leave_id = ?", leaveID).Error
	return &ap, err
}

func (r *repository) FindByManager(ctx context.Context, managerID string, skip, limit int) ([]Approval, error) {
	var aps []Approval
	err := r.db.WithContext(ctx).
		Where("approved_by = ?", managerID).
		Order("approved_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&aps).Error
	return aps, err
}

func (r *repository) ManagerExists(ctx context.Context, managerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("managers").
		Where("id = ?", managerID).
		Count(&count).Error
	return count > 0, err
}
