package leavetype_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"leavedesk/internal/leavetype"
	leavetypeerrors "leavedesk/internal/leavetype/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	createFn          func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn         func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn        func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	deleteFn          func(ctx context.Context, id string) error
	countDependentsFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) CountDependents(ctx context.Context, id string) (int64, error) {
	if f.countDependentsFn != nil {
		return f.countDependentsFn(ctx, id)
	}
	return 0, nil
}

type fakeRecorder struct{}

func (f *fakeRecorder) Record(ctx context.Context, actorType string, actorID uuid.UUID, action, targetTable string, targetID uuid.UUID) error {
	return nil
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel(leavetype.OptionsCacheKey).SetVal(1)

		svc := leavetype.NewService(repo, &fakeRecorder{}, rdb)

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual Leave"})

		assert.NoError(t, err)
		assert.Equal(t, "Annual Leave", resp.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative purely numeric name", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo, &fakeRecorder{}, nil)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "12345"})

		assert.ErrorIs(t, err, leavetypeerrors.ErrNumericName)
	})

	t.Run("success mixed name with digits", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo, &fakeRecorder{}, nil)

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Leave 2026"})

		assert.NoError(t, err)
		assert.Equal(t, "Leave 2026", resp.Name)
	})
}

func TestLeaveTypeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success cache miss reads repo then fills cache", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		typeID := uuid.New()
		repo.findAllFn = func(ctx context.Context) ([]leavetype.LeaveType, error) {
			return []leavetype.LeaveType{{ID: typeID, Name: "Sick Leave"}}, nil
		}

		expected := []leavetype.LeaveTypeResponse{{ID: typeID.String(), Name: "Sick Leave"}}
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)

		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(leavetype.OptionsCacheKey).RedisNil()
		mock.ExpectSet(leavetype.OptionsCacheKey, payload, 10*time.Minute).SetVal("OK")

		svc := leavetype.NewService(repo, &fakeRecorder{}, rdb)

		resp, err := svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success cache hit skips repo", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		repo.findAllFn = func(ctx context.Context) ([]leavetype.LeaveType, error) {
			t.Fatal("repo must not be hit on cache hit")
			return nil, nil
		}

		cached := []leavetype.LeaveTypeResponse{{ID: uuid.New().String(), Name: "Annual Leave"}}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(leavetype.OptionsCacheKey).SetVal(string(payload))

		svc := leavetype.NewService(repo, &fakeRecorder{}, rdb)

		resp, err := svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveTypeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success unused type", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		id := uuid.New()
		repo.findByIDFn = func(ctx context.Context, lid string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Unpaid Leave"}, nil
		}

		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel(leavetype.OptionsCacheKey).SetVal(1)

		svc := leavetype.NewService(repo, &fakeRecorder{}, rdb)

		assert.NoError(t, svc.Delete(ctx, id.String()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative type still referenced", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		id := uuid.New()
		repo.findByIDFn = func(ctx context.Context, lid string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Annual Leave"}, nil
		}
		repo.countDependentsFn = func(ctx context.Context, lid string) (int64, error) {
			return 3, nil
		}

		svc := leavetype.NewService(repo, &fakeRecorder{}, nil)

		err := svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeInUse)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := leavetype.NewService(&fakeLeaveTypeRepository{}, &fakeRecorder{}, nil)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}
