package balance_test

import (
	"context"
	"database/sql"
	"testing"

	"leavedesk/internal/balance"
	balanceerrors "leavedesk/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	createFn                func(ctx context.Context, bal *balance.LeaveBalance) error
	findByIDFn              func(ctx context.Context, id string) (*balance.LeaveBalance, error)
	findByEmployeeFn        func(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error)
	findByEmployeeAndTypeFn func(ctx context.Context, employeeID, typeID string) (*balance.LeaveBalance, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) Create(ctx context.Context, bal *balance.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, bal)
	}
	return nil
}

func (f *fakeBalanceRepository) FindAll(ctx context.Context, skip, limit int) ([]balance.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceRepository) FindByID(ctx context.Context, id string) (*balance.LeaveBalance, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByEmployeeAndType(ctx context.Context, employeeID, typeID string) (*balance.LeaveBalance, error) {
	if f.findByEmployeeAndTypeFn != nil {
		return f.findByEmployeeAndTypeFn(ctx, employeeID, typeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) Debit(ctx context.Context, employeeID, typeID string, days int) (int64, error) {
	return 1, nil
}

type fakeRecorder struct{}

func (f *fakeRecorder) Record(ctx context.Context, actorType string, actorID uuid.UUID, action, targetTable string, targetID uuid.UUID) error {
	return nil
}

func setupBalanceServiceTest(t *testing.T) (balance.Service, *fakeBalanceRepository) {
	t.Helper()
	repo := &fakeBalanceRepository{}
	return balance.NewService(repo, &fakeRecorder{}), repo
}

func TestBalanceService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	typeID := uuid.New().String()

	t.Run("success remaining starts at allocation", func(t *testing.T) {
		svc, repo := setupBalanceServiceTest(t)

		repo.createFn = func(ctx context.Context, bal *balance.LeaveBalance) error {
			assert.Equal(t, 12, bal.TotalAllocated)
			assert.Equal(t, 0, bal.TotalUsed)
			assert.Equal(t, 12, bal.Remaining)
			return nil
		}

		resp, err := svc.Create(ctx, balance.CreateBalanceRequest{
			EmployeeID:     employeeID,
			TypeID:         typeID,
			TotalAllocated: 12,
		})

		assert.NoError(t, err)
		assert.Equal(t, 12, resp.TotalAllocated)
		assert.Equal(t, 12, resp.Remaining)
		assert.Equal(t, 0, resp.TotalUsed)
	})

	t.Run("negative duplicate employee and type pair", func(t *testing.T) {
		svc, repo := setupBalanceServiceTest(t)

		repo.findByEmployeeAndTypeFn = func(ctx context.Context, eid, tid string) (*balance.LeaveBalance, error) {
			return &balance.LeaveBalance{}, nil
		}

		_, err := svc.Create(ctx, balance.CreateBalanceRequest{
			EmployeeID:     employeeID,
			TypeID:         typeID,
			TotalAllocated: 12,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceExists)
	})

	t.Run("negative zero allocation", func(t *testing.T) {
		svc, _ := setupBalanceServiceTest(t)

		_, err := svc.Create(ctx, balance.CreateBalanceRequest{
			EmployeeID:     employeeID,
			TypeID:         typeID,
			TotalAllocated: 0,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidAllocation)
	})
}

func TestBalanceService_GetByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupBalanceServiceTest(t)

		employeeID := uuid.New()
		repo.findByEmployeeFn = func(ctx context.Context, eid string) ([]balance.LeaveBalance, error) {
			return []balance.LeaveBalance{
				{
					ID:             uuid.New(),
					EmployeeID:     employeeID,
					TypeID:         uuid.New(),
					TotalAllocated: 10,
					TotalUsed:      3,
					Remaining:      7,
				},
			}, nil
		}

		resp, err := svc.GetByEmployee(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, resp[0].TotalAllocated-resp[0].TotalUsed, resp[0].Remaining)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc, _ := setupBalanceServiceTest(t)

		_, err := svc.GetByEmployee(ctx, "not-a-uuid")

		assert.Error(t, err)
	})
}

func TestBalanceService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative not found", func(t *testing.T) {
		svc, _ := setupBalanceServiceTest(t)

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	})
}
