package leave

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lv *Leave) error
	FindAll(ctx context.Context, skip, limit int) ([]Leave, error)
	FindPending(ctx context.Context, skip, limit int) ([]Leave, error)
	FindByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	LeaveTypeExists(ctx context.Context, typeID string) (bool, error)
	TransitionFromPending(ctx context.Context, id, toStatus string) (int64, error)
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

func (r *repository) Create(ctx context.Context, lv *Leave) error {
	return r.db.WithContext(ctx).Create(lv).Error
}

func (r *repository) FindAll(ctx context.Context, skip, limit int) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindPending(ctx context.Context, skip, limit int) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var lv Leave
	err := r.db.WithContext(ctx).First(&lv, "id = ?", id).Error
	return &lv, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Leave{}).Count(&count).Error
	return count, err
}

func (r *repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Leave{}).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) LeaveTypeExists(ctx context.Context, typeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("leave_types").
		Where("id = ?", typeID).
		Count(&count).Error
	return count > 0, err
}

// TransitionFromPending flips the status only if the row is still pending.
// The returned row count tells the caller whether it won the transition;
// a concurrent decider that lost sees zero.
func (r *repository) TransitionFromPending(ctx context.Context, id, toStatus string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}
