package leave

import (
	"context"
	"database/sql"

	"github.com/karanprajapat824/hr-system/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByIDAndEmployee(ctx context.Context, id, employeeID string) (*Leave, error)
	FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]Leave, error)
	FindAllByStatus(ctx context.Context, status string) ([]Leave, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, l *Leave) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements execute inside tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GORMOverTx(tx)}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDAndEmployee(ctx context.Context, id, employeeID string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("employee_id = ?", employeeID).
		First(&l).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]Leave, error) {
	var rows []Leave
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByStatus(ctx context.Context, status string) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ?", status).
		Order("applied_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}
