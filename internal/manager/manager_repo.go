package manager

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=manager_repo.go -destination=mock/manager_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Manager) error
	FindAll(ctx context.Context, skip, limit int) ([]Manager, error)
	FindByID(ctx context.Context, id string) (*Manager, error)
	FindByEmail(ctx context.Context, email string) (*Manager, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, m *Manager) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindAll(ctx context.Context, skip, limit int) ([]Manager, error) {
	var managers []Manager
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&managers).Error
	return managers, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Manager, error) {
	var m Manager
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Manager, error) {
	var m Manager
	err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	return &m, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Manager{}, "id = ?", id).Error
}
