package employee

import (
	"context"
	"database/sql"

	"github.com/karanprajapat824/hr-system/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAllByRole(ctx context.Context, role string) ([]Employee, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	DecrementBalance(ctx context.Context, employeeID, leaveType string, days int) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements execute inside tx, so
// the conditional balance decrement commits or rolls back together
// with the caller's other writes.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GORMOverTx(tx)}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		First(&e, "email = ?", email).Error
	return &e, err
}

func (r *repository) FindAllByRole(ctx context.Context, role string) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

// balanceColumns whitelists the mutable balance columns so the raw
// update below can never take an arbitrary column name.
var balanceColumns = map[string]string{
	"CASUAL": "casual_balance",
	"SICK":   "sick_balance",
	"PAID":   "paid_balance",
}

// DecrementBalance performs an atomic conditional decrement. It reports
// false when the employee does not exist or the remaining balance is
// smaller than days, so concurrent approvals can never drive a balance
// negative.
func (r *repository) DecrementBalance(ctx context.Context, employeeID, leaveType string, days int) (bool, error) {
	column, ok := balanceColumns[leaveType]
	if !ok {
		return false, nil
	}

	res := r.db.WithContext(ctx).Exec(`
		UPDATE employees
		SET `+column+` = `+column+` - ?, updated_at = now()
		WHERE id = ? AND `+column+` >= ? AND deleted_at IS NULL
	`, days, employeeID, days)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
