package auth_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"leavedesk/internal/admin"
	"leavedesk/internal/auth"
	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/employee"
	"leavedesk/internal/manager"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAdminRepository struct {
	findByEmailFn func(ctx context.Context, email string) (*admin.Admin, error)
}

func (f *fakeAdminRepository) WithTx(tx *sql.Tx) admin.Repository               { return f }
func (f *fakeAdminRepository) Create(ctx context.Context, a *admin.Admin) error { return nil }
func (f *fakeAdminRepository) FindAll(ctx context.Context, skip, limit int) ([]admin.Admin, error) {
	return nil, nil
}
func (f *fakeAdminRepository) FindByID(ctx context.Context, id string) (*admin.Admin, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeManagerRepository struct {
	findByEmailFn func(ctx context.Context, email string) (*manager.Manager, error)
}

func (f *fakeManagerRepository) WithTx(tx *sql.Tx) manager.Repository { return f }
func (f *fakeManagerRepository) Create(ctx context.Context, m *manager.Manager) error {
	return nil
}
func (f *fakeManagerRepository) FindAll(ctx context.Context, skip, limit int) ([]manager.Manager, error) {
	return nil, nil
}
func (f *fakeManagerRepository) FindByID(ctx context.Context, id string) (*manager.Manager, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeManagerRepository) FindByEmail(ctx context.Context, email string) (*manager.Manager, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeManagerRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeEmployeeRepository struct {
	findByEmailFn func(ctx context.Context, email string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context, skip, limit int) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeRecorder struct{}

func (f *fakeRecorder) Record(ctx context.Context, actorType string, actorID uuid.UUID, action, targetTable string, targetID uuid.UUID) error {
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func setupAuthServiceTest(t *testing.T) (auth.Service, *fakeAdminRepository, *fakeManagerRepository, *fakeEmployeeRepository) {
	t.Helper()
	adminRepo := &fakeAdminRepository{}
	managerRepo := &fakeManagerRepository{}
	employeeRepo := &fakeEmployeeRepository{}
	cfg := auth.Config{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		AdminEmail:    "root@example.com",
		AdminPassword: "root-password",
	}
	svc := auth.NewService(cfg, adminRepo, managerRepo, employeeRepo, &fakeRecorder{})
	return svc, adminRepo, managerRepo, employeeRepo
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestAuthService_LoginEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues token with actor claims", func(t *testing.T) {
		svc, _, _, employeeRepo := setupAuthServiceTest(t)

		empID := uuid.New()
		employeeRepo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			assert.Equal(t, "jo@example.com", email)
			return &employee.Employee{
				ID:           empID,
				Email:        "jo@example.com",
				PasswordHash: mustHash(t, "secret-pass"),
			}, nil
		}

		resp, err := svc.LoginEmployee(ctx, auth.LoginRequest{
			Email:    "jo@example.com",
			Password: "secret-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "employee", resp.ActorRole)

		claims := parseClaims(t, resp.AccessToken)
		assert.Equal(t, empID.String(), claims["actor_id"])
		assert.Equal(t, "employee", claims["actor_role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		svc, _, _, employeeRepo := setupAuthServiceTest(t)

		employeeRepo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:           uuid.New(),
				PasswordHash: mustHash(t, "secret-pass"),
			}, nil
		}

		_, err := svc.LoginEmployee(ctx, auth.LoginRequest{
			Email:    "jo@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc, _, _, _ := setupAuthServiceTest(t)

		_, err := svc.LoginEmployee(ctx, auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_LoginManager(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _, managerRepo, _ := setupAuthServiceTest(t)

		mgrID := uuid.New()
		managerRepo.findByEmailFn = func(ctx context.Context, email string) (*manager.Manager, error) {
			return &manager.Manager{
				ID:           mgrID,
				PasswordHash: mustHash(t, "mgr-pass"),
			}, nil
		}

		resp, err := svc.LoginManager(ctx, auth.LoginRequest{
			Email:    "mgr@example.com",
			Password: "mgr-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "manager", resp.ActorRole)
		assert.Equal(t, mgrID.String(), resp.ActorID)
	})
}

func TestAuthService_LoginAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("success stored admin", func(t *testing.T) {
		svc, adminRepo, _, _ := setupAuthServiceTest(t)

		admID := uuid.New()
		adminRepo.findByEmailFn = func(ctx context.Context, email string) (*admin.Admin, error) {
			return &admin.Admin{
				ID:           admID,
				PasswordHash: mustHash(t, "adm-pass"),
			}, nil
		}

		resp, err := svc.LoginAdmin(ctx, auth.LoginRequest{
			Email:    "adm@example.com",
			Password: "adm-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "admin", resp.ActorRole)
		assert.Equal(t, admID.String(), resp.ActorID)
	})

	t.Run("success bootstrap admin from config", func(t *testing.T) {
		svc, _, _, _ := setupAuthServiceTest(t)

		resp, err := svc.LoginAdmin(ctx, auth.LoginRequest{
			Email:    "root@example.com",
			Password: "root-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, "admin", resp.ActorRole)
		assert.Equal(t, uuid.Nil.String(), resp.ActorID)
	})

	t.Run("negative bootstrap admin wrong password", func(t *testing.T) {
		svc, _, _, _ := setupAuthServiceTest(t)

		_, err := svc.LoginAdmin(ctx, auth.LoginRequest{
			Email:    "root@example.com",
			Password: "bad",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}
