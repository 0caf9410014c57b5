package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// Default leave allocation for a newly registered employee.
const (
	DefaultCasualBalance = 8
	DefaultSickBalance   = 10
	DefaultPaidBalance   = 2
)

type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email;not null"`
	Password      string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(30)"`
	Department    string    `gorm:"type:varchar(100)"`
	Role          string    `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	DateOfJoining time.Time `gorm:"type:date;not null"`

	// Remaining leave days per category. Never negative; mutated only by
	// the leave engine on approval.
	CasualBalance int `gorm:"type:int;not null;default:8"`
	SickBalance   int `gorm:"type:int;not null;default:10"`
	PaidBalance   int `gorm:"type:int;not null;default:2"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// BalanceFor returns the remaining days for a leave type. The second
// return is false when the type does not exist in the balance map, which
// is how an unknown leave type is detected.
func (e *Employee) BalanceFor(leaveType string) (int, bool) {
	switch leaveType {
	case "CASUAL":
		return e.CasualBalance, true
	case "SICK":
		return e.SickBalance, true
	case "PAID":
		return e.PaidBalance, true
	default:
		return 0, false
	}
}
