package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	attendanceerrors "github.com/karanprajapat824/hr-system/internal/attendance/errors"
	"github.com/karanprajapat824/hr-system/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	statusPresent = "PRESENT"
	statusAbsent  = "ABSENT"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	SelfHistory(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	AllHistory(ctx context.Context) ([]AttendanceResponse, error)
	Today(ctx context.Context, employeeID string) (*AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, clk: clk, logger: l}
}

// CheckIn opens today's attendance record. Per employee and day the
// state machine is NO_RECORD -> CHECKED_IN -> CHECKED_OUT; a second
// check-in on a PRESENT record is a conflict.
func (s *service) CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.clk.Now()
	today := clock.Truncate(now)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	if err == nil && existing.Status == statusPresent {
		s.logger.Warn("check-in rejected, already present",
			zap.String("employee_id", employeeID),
			zap.String("date", today.Format("2006-01-02")),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	var row *Attendance
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			AttendanceDate: today,
			CheckIn:        &now,
			Status:         statusPresent,
		}
		if err := qtx.Create(ctx, row); err != nil {
			if isDuplicateDay(err) {
				// A concurrent check-in slipped past the existence
				// check and won the unique index.
				return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			}
			s.logger.Error("check-in persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	} else {
		// A pre-existing ABSENT placeholder becomes PRESENT once a
		// check-in time is recorded.
		row = existing
		row.CheckIn = &now
		row.Status = statusPresent
		if err := qtx.Update(ctx, row); err != nil {
			s.logger.Error("check-in update failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("date", today.Format("2006-01-02")),
	)
	return mapToResponse(*row), nil
}

// CheckOut closes today's record. It requires an earlier check-in and
// never overwrites an existing check-out time.
func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.clk.Now()
	today := clock.Truncate(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &now

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	s.logger.Info("check-out success",
		zap.String("employee_id", employeeID),
		zap.String("date", today.Format("2006-01-02")),
	)
	return mapToResponse(*row), nil
}

func (s *service) SelfHistory(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) AllHistory(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// Today returns today's record for the employee, or nil when the day
// has no record yet.
func (s *service) Today(ctx context.Context, employeeID string) (*AttendanceResponse, error) {
	today := clock.Truncate(s.clk.Now())

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapToResponse(*row)
	return &resp, nil
}

// isDuplicateDay detects the unique violation on (employee_id,
// attendance_date) raised when two check-ins race past the existence
// check.
func isDuplicateDay(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_attendance_employee_date")
}
