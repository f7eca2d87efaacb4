package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn        func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context, skip, limit int) ([]leave.LeaveResponse, int64, error)
	getPendingFn    func(ctx context.Context, skip, limit int) ([]leave.LeaveResponse, int64, error)
	getByEmployeeFn func(ctx context.Context, employeeID string, skip, limit int) ([]leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, id string) (leave.LeaveResponse, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeLeaveService) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, skip, limit int) ([]leave.LeaveResponse, int64, error) {
	return f.getAllFn(ctx, skip, limit)
}
func (f *fakeLeaveService) GetPending(ctx context.Context, skip, limit int) ([]leave.LeaveResponse, int64, error) {
	return f.getPendingFn(ctx, skip, limit)
}
func (f *fakeLeaveService) GetByEmployee(ctx context.Context, employeeID string, skip, limit int) ([]leave.LeaveResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID, skip, limit)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func newLeaveTestRouter(svc leave.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := leave.NewHandler(svc)
	r.POST("/leaves", handler.Create)
	r.GET("/leaves", handler.GetAll)
	r.GET("/leaves/pending", handler.GetPending)
	r.GET("/leaves/:id", handler.GetByID)
	r.DELETE("/leaves/:id", handler.Delete)
	return r
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()
		typeID := uuid.New().String()

		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, typeID, req.TypeID)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					TypeID:     req.TypeID,
					Status:     leave.StatusPending,
					Days:       2,
				}, nil
			},
		}
		r := newLeaveTestRouter(svc)

		body := `{"employee_id":"` + employeeID + `","type_id":"` + typeID + `","start_time":"2026-03-01","end_time":"2026-03-02"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on invalid payload")
				return leave.LeaveResponse{}, nil
			},
		}
		r := newLeaveTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})

	t.Run("negative invalid date range maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidDateRange
			},
		}
		r := newLeaveTestRouter(svc)

		body := `{"employee_id":"` + uuid.New().String() + `","type_id":"` + uuid.New().String() + `","start_time":"2026-03-03","end_time":"2026-03-01"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestLeaveHandler_Delete(t *testing.T) {
	t.Run("negative processed leave maps to 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			deleteFn: func(ctx context.Context, id string) error {
				return leaveerrors.ErrNotPending
			},
		}
		r := newLeaveTestRouter(svc)

		req := httptest.NewRequest(http.MethodDelete, "/leaves/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_GetPending(t *testing.T) {
	t.Run("success with pagination meta", func(t *testing.T) {
		svc := &fakeLeaveService{
			getPendingFn: func(ctx context.Context, skip, limit int) ([]leave.LeaveResponse, int64, error) {
				assert.Equal(t, 10, skip)
				assert.Equal(t, 5, limit)
				return []leave.LeaveResponse{{ID: uuid.New().String(), Status: leave.StatusPending}}, 42, nil
			},
		}
		r := newLeaveTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/leaves/pending?skip=10&limit=5", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})
}
