package balance

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, bal *LeaveBalance) error
	FindAll(ctx context.Context, skip, limit int) ([]LeaveBalance, error)
	FindByID(ctx context.Context, id string) (*LeaveBalance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	FindByEmployeeAndType(ctx context.Context, employeeID, typeID string) (*LeaveBalance, error)
	Debit(ctx context.Context, employeeID, typeID string, days int) (int64, error)
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

func (r *repository) Create(ctx context.Context, bal *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(bal).Error
}

func (r *repository) FindAll(ctx context.Context, skip, limit int) ([]LeaveBalance, error) {
	var bals []LeaveBalance
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&bals).Error
	return bals, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveBalance, error) {
	var bal LeaveBalance
	err := r.db.WithContext(ctx).First(&bal, "id = ?", id).Error
	return &bal, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	var bals []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&bals).Error
	return bals, err
}

func (r *repository) FindByEmployeeAndType(ctx context.Context, employeeID, typeID string) (*LeaveBalance, error) {
	var bal LeaveBalance
	err := r.db.WithContext(ctx).
		First(&bal, "employee_id = ? AND type_id = ?", employeeID, typeID).Error
	return &bal, err
}

// Debit subtracts days from the balance only while enough remains. The
// guard in the WHERE clause is what keeps remaining non-negative under
// concurrent approvals; a zero row count means the debit did not happen.
func (r *repository) Debit(ctx context.Context, employeeID, typeID string, days int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&LeaveBalance{}).
		Where("employee_id = ? AND type_id = ? AND remaining >= ?", employeeID, typeID, days).
		Updates(map[string]interface{}{
			"total_used": gorm.Expr("total_used + ?", days),
			"remaining":  gorm.Expr("remaining - ?", days),
		})
	return res.RowsAffected, res.Error
}
