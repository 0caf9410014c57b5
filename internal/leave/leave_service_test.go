package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/karanprajapat824/hr-system/internal/employee"
	employeeerrors "github.com/karanprajapat824/hr-system/internal/employee/errors"
	"github.com/karanprajapat824/hr-system/internal/leave"
	leaveerrors "github.com/karanprajapat824/hr-system/internal/leave/errors"
	"github.com/karanprajapat824/hr-system/internal/messaging/kafka"
	"github.com/karanprajapat824/hr-system/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn              func(tx *sql.Tx) leave.Repository
	createFn              func(ctx context.Context, l *leave.Leave) error
	findByIDFn            func(ctx context.Context, id string) (*leave.Leave, error)
	findByIDAndEmployeeFn func(ctx context.Context, id, employeeID string) (*leave.Leave, error)
	findAllByEmployeeFn   func(ctx context.Context, employeeID string, limit int) ([]leave.Leave, error)
	findAllByStatusFn     func(ctx context.Context, status string) ([]leave.Leave, error)
	countByStatusFn       func(ctx context.Context, status string) (int64, error)
	updateFn              func(ctx context.Context, l *leave.Leave) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDAndEmployee(ctx context.Context, id, employeeID string) (*leave.Leave, error) {
	if f.findByIDAndEmployeeFn != nil {
		return f.findByIDAndEmployeeFn(ctx, id, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAllByEmployee(ctx context.Context, employeeID string, limit int) ([]leave.Leave, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID, limit)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByStatus(ctx context.Context, status string) ([]leave.Leave, error) {
	if f.findAllByStatusFn != nil {
		return f.findAllByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if f.countByStatusFn != nil {
		return f.countByStatusFn(ctx, status)
	}
	return 0, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	decrementBalanceFn func(ctx context.Context, employeeID, leaveType string, days int) (bool, error)
	decrementCalls     int
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &employee.Employee{
		ID:            uuid.MustParse(id),
		CasualBalance: employee.DefaultCasualBalance,
		SickBalance:   employee.DefaultSickBalance,
		PaidBalance:   employee.DefaultPaidBalance,
	}, nil
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindAllByRole(ctx context.Context, role string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeRepository) DecrementBalance(ctx context.Context, employeeID, leaveType string, days int) (bool, error) {
	f.decrementCalls++
	if f.decrementBalanceFn != nil {
		return f.decrementBalanceFn(ctx, employeeID, leaveType, days)
	}
	return true, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
	created  []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

var testNow = time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC)

type leaveServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   leave.Service
	repo      *fakeLeaveRepository
	employees *fakeEmployeeRepository
	outbox    *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	employees := &fakeEmployeeRepository{}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewServiceWithOutbox(db, repo, employees, outbox, clock.Fixed(testNow))

	return &leaveServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success counts both endpoints", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-08-03",
			EndDate:   "2026-08-05",
			Reason:    "Family event",
		}

		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.Equal(t, leave.TypeCasual, l.LeaveType)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.Equal(t, testNow, l.AppliedAt)
			return nil
		}

		resp, err := deps.service.Apply(ctx, employeeID, req)

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Zero(t, deps.employees.decrementCalls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("single day leave counts one", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.ApplyLeaveRequest{
			LeaveType: leave.TypePaid,
			StartDate: "2026-08-03",
			EndDate:   "2026-08-03",
		}

		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, 1, l.TotalDays)
			return nil
		}

		resp, err := deps.service.Apply(ctx, employeeID, req)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.TotalDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid date format", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "03-08-2026",
			EndDate:   "2026-08-05",
		}

		_, err := deps.service.Apply(ctx, employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative start after end", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-08-05",
			EndDate:   "2026-08-03",
		}

		_, err := deps.service.Apply(ctx, employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.ApplyLeaveRequest{
			LeaveType: "SABBATICAL",
			StartDate: "2026-08-03",
			EndDate:   "2026-08-05",
		}

		_, err := deps.service.Apply(ctx, employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.ApplyLeaveRequest{
			LeaveType: leave.TypeSick,
			StartDate: "2026-08-03",
			EndDate:   "2026-08-14",
		}

		created := false
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = true
			return nil
		}

		// 12 requested days against the default 10 sick days.
		_, err := deps.service.Apply(ctx, employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.False(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		req := leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-08-03",
			EndDate:   "2026-08-05",
		}

		_, err := deps.service.Apply(ctx, employeeID, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.ApplyLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-08-03",
			EndDate:   "2026-08-05",
		}

		_, err := deps.service.Apply(ctx, "not-a-uuid", req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
	})
}

func TestLeaveService_Review(t *testing.T) {
	ctx := context.Background()
	reviewerID := uuid.New().String()

	pendingLeave := func() *leave.Leave {
		return &leave.Leave{
			ID:         uuid.New(),
			EmployeeID: uuid.New(),
			LeaveType:  leave.TypeSick,
			StartDate:  time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
			TotalDays:  3,
			Status:     leave.StatusPending,
			AppliedAt:  testNow.Add(-24 * time.Hour),
		}
	}

	t.Run("approve debits exactly once", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		l := pendingLeave()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			assert.Equal(t, l.ID.String(), id)
			return l, nil
		}
		deps.employees.decrementBalanceFn = func(ctx context.Context, employeeID, leaveType string, days int) (bool, error) {
			assert.Equal(t, l.EmployeeID.String(), employeeID)
			assert.Equal(t, leave.TypeSick, leaveType)
			assert.Equal(t, 3, days)
			return true, nil
		}
		deps.repo.updateFn = func(ctx context.Context, got *leave.Leave) error {
			assert.Equal(t, leave.StatusApproved, got.Status)
			assert.NotNil(t, got.ReviewedBy)
			assert.Equal(t, reviewerID, got.ReviewedBy.String())
			assert.NotNil(t, got.ReviewedAt)
			assert.Equal(t, testNow, *got.ReviewedAt)
			return nil
		}

		resp, err := deps.service.Review(ctx, reviewerID, l.ID.String(), leave.StatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, 1, deps.employees.decrementCalls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approve enqueues outbox event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		_, err := deps.service.Review(ctx, reviewerID, l.ID.String(), leave.StatusApproved)

		assert.NoError(t, err)
		assert.Len(t, deps.outbox.created, 1)
		event := deps.outbox.created[0]
		assert.Equal(t, "leave.reviewed", event.EventType)
		assert.Equal(t, l.ID.String(), event.AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject keeps balance untouched", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		resp, err := deps.service.Review(ctx, reviewerID, l.ID.String(), leave.StatusRejected)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Zero(t, deps.employees.decrementCalls)
		assert.Len(t, deps.outbox.created, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already finalized", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		l := pendingLeave()
		l.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		_, err := deps.service.Review(ctx, reviewerID, l.ID.String(), leave.StatusRejected)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveFinalized)
		assert.Zero(t, deps.employees.decrementCalls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative cancelled is terminal", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		l := pendingLeave()
		l.Status = leave.StatusCancelled
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		_, err := deps.service.Review(ctx, reviewerID, l.ID.String(), leave.StatusApproved)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveFinalized)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative balance drained before approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		l := pendingLeave()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.employees.decrementBalanceFn = func(ctx context.Context, employeeID, leaveType string, days int) (bool, error) {
			return false, nil
		}

		updated := false
		deps.repo.updateFn = func(ctx context.Context, got *leave.Leave) error {
			updated = true
			return nil
		}

		_, err := deps.service.Review(ctx, reviewerID, l.ID.String(), leave.StatusApproved)

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.False(t, updated)
		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Review(ctx, reviewerID, uuid.New().String(), "DENIED")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)
	})

	t.Run("negative invalid leave id", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Review(ctx, reviewerID, "not-a-uuid", leave.StatusApproved)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative leave not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Review(ctx, reviewerID, uuid.New().String(), leave.StatusApproved)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		l := &leave.Leave{
			ID:         uuid.New(),
			EmployeeID: uuid.MustParse(employeeID),
			LeaveType:  leave.TypeCasual,
			StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			TotalDays:  2,
			Status:     leave.StatusPending,
			AppliedAt:  testNow,
		}

		deps.repo.findByIDAndEmployeeFn = func(ctx context.Context, id, eid string) (*leave.Leave, error) {
			assert.Equal(t, l.ID.String(), id)
			assert.Equal(t, employeeID, eid)
			return l, nil
		}
		deps.repo.updateFn = func(ctx context.Context, got *leave.Leave) error {
			assert.Equal(t, leave.StatusCancelled, got.Status)
			assert.Nil(t, got.ReviewedBy)
			assert.Nil(t, got.ReviewedAt)
			return nil
		}

		resp, err := deps.service.Cancel(ctx, employeeID, l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.Zero(t, deps.employees.decrementCalls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid leave id", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Cancel(ctx, employeeID, "not-a-uuid")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndEmployeeFn = func(ctx context.Context, id, eid string) (*leave.Leave, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Cancel(ctx, employeeID, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndEmployeeFn = func(ctx context.Context, id, eid string) (*leave.Leave, error) {
			return &leave.Leave{
				ID:         uuid.MustParse(id),
				EmployeeID: uuid.MustParse(eid),
				Status:     leave.StatusApproved,
			}, nil
		}

		_, err := deps.service.Cancel(ctx, employeeID, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrOnlyPendingCancellable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_History(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success passes limit through", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByEmployeeFn = func(ctx context.Context, eid string, limit int) ([]leave.Leave, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 5, limit)
			return []leave.Leave{
				{
					ID:         uuid.New(),
					EmployeeID: uuid.MustParse(employeeID),
					LeaveType:  leave.TypePaid,
					StartDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
					EndDate:    time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
					TotalDays:  2,
					Status:     leave.StatusApproved,
					AppliedAt:  testNow,
				},
			}, nil
		}

		resp, err := deps.service.History(ctx, employeeID, 5)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, leave.TypePaid, resp[0].LeaveType)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByEmployeeFn = func(ctx context.Context, eid string, limit int) ([]leave.Leave, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.History(ctx, employeeID, 0)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestLeaveService_RemainingBalance(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:            uuid.MustParse(id),
				CasualBalance: 6,
				SickBalance:   10,
				PaidBalance:   1,
			}, nil
		}

		resp, err := deps.service.RemainingBalance(ctx, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, 6, resp.Casual)
		assert.Equal(t, 10, resp.Sick)
		assert.Equal(t, 1, resp.Paid)
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.RemainingBalance(ctx, employeeID)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestLeaveService_PendingLeaves(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByStatusFn = func(ctx context.Context, status string) ([]leave.Leave, error) {
			assert.Equal(t, leave.StatusPending, status)
			return []leave.Leave{
				{
					ID:         uuid.New(),
					EmployeeID: uuid.New(),
					LeaveType:  leave.TypeCasual,
					StartDate:  time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC),
					EndDate:    time.Date(2026, 7, 21, 0, 0, 0, 0, time.UTC),
					TotalDays:  2,
					Status:     leave.StatusPending,
					AppliedAt:  testNow,
					Employee:   &leave.EmployeeRef{ID: uuid.New(), Name: "Asha Rao"},
				},
			}, nil
		}

		resp, err := deps.service.PendingLeaves(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Asha Rao", resp[0].EmployeeName)
	})
}
