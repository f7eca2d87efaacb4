package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	createFn          func(ctx context.Context, lv *leave.Leave) error
	findAllFn         func(ctx context.Context, skip, limit int) ([]leave.Leave, error)
	findPendingFn     func(ctx context.Context, skip, limit int) ([]leave.Leave, error)
	findByEmployeeFn  func(ctx context.Context, employeeID string, skip, limit int) ([]leave.Leave, error)
	findByIDFn        func(ctx context.Context, id string) (*leave.Leave, error)
	deleteFn          func(ctx context.Context, id string) error
	employeeExistsFn  func(ctx context.Context, employeeID string) (bool, error)
	leaveTypeExistsFn func(ctx context.Context, typeID string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, lv *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, lv)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, skip, limit int) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, skip, limit)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindPending(ctx context.Context, skip, limit int) ([]leave.Leave, error) {
	if f.findPendingFn != nil {
		return f.findPendingFn(ctx, skip, limit)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]leave.Leave, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID, skip, limit)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveRepository) CountAll(ctx context.Context) (int64, error)     { return 1, nil }
func (f *fakeLeaveRepository) CountPending(ctx context.Context) (int64, error) { return 1, nil }

func (f *fakeLeaveRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) LeaveTypeExists(ctx context.Context, typeID string) (bool, error) {
	if f.leaveTypeExistsFn != nil {
		return f.leaveTypeExistsFn(ctx, typeID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) TransitionFromPending(ctx context.Context, id, toStatus string) (int64, error) {
	return 1, nil
}

type fakeRecorder struct{}

func (f *fakeRecorder) Record(ctx context.Context, actorType string, actorID uuid.UUID, action, targetTable string, targetID uuid.UUID) error {
	return nil
}

func setupLeaveServiceTest(t *testing.T) (leave.Service, *fakeLeaveRepository) {
	t.Helper()
	repo := &fakeLeaveRepository{}
	return leave.NewService(repo, &fakeRecorder{}), repo
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	typeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupLeaveServiceTest(t)

		repo.createFn = func(ctx context.Context, lv *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(employeeID), lv.EmployeeID)
			assert.Equal(t, uuid.MustParse(typeID), lv.TypeID)
			assert.Equal(t, leave.StatusPending, lv.Status)
			assert.Equal(t, 3, lv.InclusiveDays())
			return nil
		}

		resp, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartTime:  "2026-03-01",
			EndTime:    "2026-03-03",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.Days)
	})

	t.Run("success accepts RFC3339 timestamps", func(t *testing.T) {
		svc, _ := setupLeaveServiceTest(t)

		resp, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartTime:  "2026-03-01T09:00:00Z",
			EndTime:    "2026-03-02T09:00:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.Days)
	})

	t.Run("negative start not before end", func(t *testing.T) {
		svc, _ := setupLeaveServiceTest(t)

		_, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartTime:  "2026-03-03",
			EndTime:    "2026-03-01",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative equal start and end", func(t *testing.T) {
		svc, _ := setupLeaveServiceTest(t)

		_, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartTime:  "2026-03-01",
			EndTime:    "2026-03-01",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc, repo := setupLeaveServiceTest(t)

		repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartTime:  "2026-03-01",
			EndTime:    "2026-03-02",
		})

		assert.Error(t, err)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		svc, repo := setupLeaveServiceTest(t)

		repo.leaveTypeExistsFn = func(ctx context.Context, tid string) (bool, error) {
			return false, nil
		}

		_, err := svc.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartTime:  "2026-03-01",
			EndTime:    "2026-03-02",
		})

		assert.Error(t, err)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success pending leave", func(t *testing.T) {
		svc, repo := setupLeaveServiceTest(t)

		id := uuid.New()
		repo.findByIDFn = func(ctx context.Context, lid string) (*leave.Leave, error) {
			return &leave.Leave{ID: id, Status: leave.StatusPending}, nil
		}

		deleted := false
		repo.deleteFn = func(ctx context.Context, lid string) error {
			deleted = true
			return nil
		}

		assert.NoError(t, svc.Delete(ctx, id.String()))
		assert.True(t, deleted)
	})

	t.Run("negative processed leave", func(t *testing.T) {
		svc, repo := setupLeaveServiceTest(t)

		id := uuid.New()
		repo.findByIDFn = func(ctx context.Context, lid string) (*leave.Leave, error) {
			return &leave.Leave{ID: id, Status: leave.StatusApproved}, nil
		}

		err := svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotPending)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc, _ := setupLeaveServiceTest(t)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_GetPending(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupLeaveServiceTest(t)

		repo.findPendingFn = func(ctx context.Context, skip, limit int) ([]leave.Leave, error) {
			return []leave.Leave{
				{
					ID:         uuid.New(),
					EmployeeID: uuid.New(),
					TypeID:     uuid.New(),
					StartTime:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
					EndTime:    time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
					Status:     leave.StatusPending,
				},
			}, nil
		}

		resp, total, err := svc.GetPending(ctx, 0, 10)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, leave.StatusPending, resp[0].Status)
	})
}
