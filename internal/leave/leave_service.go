package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/karanprajapat824/hr-system/internal/employee"
	employeeerrors "github.com/karanprajapat824/hr-system/internal/employee/errors"
	"github.com/karanprajapat824/hr-system/internal/events"
	leaveerrors "github.com/karanprajapat824/hr-system/internal/leave/errors"
	"github.com/karanprajapat824/hr-system/internal/messaging/kafka"
	"github.com/karanprajapat824/hr-system/internal/shared/clock"
	"github.com/karanprajapat824/hr-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	TypeCasual = "CASUAL"
	TypeSick   = "SICK"
	TypePaid   = "PAID"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error)
	Review(ctx context.Context, reviewerID, id, targetStatus string) (LeaveResponse, error)
	Cancel(ctx context.Context, employeeID, id string) (LeaveResponse, error)
	History(ctx context.Context, employeeID string, limit int) ([]LeaveResponse, error)
	RemainingBalance(ctx context.Context, employeeID string) (employee.LeaveBalanceResponse, error)
	PendingLeaves(ctx context.Context) ([]LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	clk       clock.Clock
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, clk, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		clk:       clk,
		logger:    l,
	}
}

// Apply validates the request and creates a PENDING leave. The balance
// is only checked here, never debited; the debit happens on approval.
func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	emp, err := s.employees.WithTx(tx).FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	// The leave type is valid only when the employee's balance map has
	// a matching key.
	available, ok := emp.BalanceFor(req.LeaveType)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	if totalDays > available {
		s.logger.Warn("apply leave insufficient balance",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", req.LeaveType),
			zap.Int("requested_days", totalDays),
			zap.Int("available", available),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     StatusPending,
		AppliedAt:  s.clk.Now(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*l), nil
}

// Review applies an admin decision. PENDING is the only reviewable
// state; APPROVED debits the matching balance with an atomic
// conditional decrement so a double approval can never drive it
// negative.
func (s *service) Review(ctx context.Context, reviewerID, id, targetStatus string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", targetStatus),
	)

	switch targetStatus {
	case StatusApproved, StatusRejected, StatusCancelled:
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		log.Warn("review leave already finalized",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveFinalized
	}

	employees := s.employees.WithTx(tx)
	if _, err := employees.FindByID(ctx, l.EmployeeID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	if targetStatus == StatusApproved {
		// Debit the type recorded on the request itself, never a
		// client-supplied type.
		debited, err := employees.DecrementBalance(ctx, l.EmployeeID.String(), l.LeaveType, l.TotalDays)
		if err != nil {
			log.Error("review leave balance debit failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
		if !debited {
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	now := s.clk.Now()
	l.Status = targetStatus
	l.ReviewedBy = &reviewerUUID
	l.ReviewedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		log.Error("review leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.enqueueReviewedEvent(ctx, tx, l, reviewerID); err != nil {
		log.Error("review leave enqueue event failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("review leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	log.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*l), nil
}

// Cancel lets the owning employee withdraw a still-pending request.
// There is no balance side effect because nothing was reserved.
func (s *service) Cancel(ctx context.Context, employeeID, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndEmployee(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrOnlyPendingCancellable
	}

	l.Status = StatusCancelled

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("cancel leave success",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)

	return mapToResponse(*l), nil
}

func (s *service) History(ctx context.Context, employeeID string, limit int) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) RemainingBalance(ctx context.Context, employeeID string) (employee.LeaveBalanceResponse, error) {
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employee.LeaveBalanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return employee.LeaveBalanceResponse{}, err
	}
	return employee.LeaveBalanceResponse{
		Casual: emp.CasualBalance,
		Sick:   emp.SickBalance,
		Paid:   emp.PaidBalance,
	}, nil
}

func (s *service) PendingLeaves(ctx context.Context) ([]LeaveResponse, error) {
	rows, err := s.repo.FindAllByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// enqueueReviewedEvent records the decision in the transactional outbox
// so the notification stream commits atomically with the status change.
func (s *service) enqueueReviewedEvent(ctx context.Context, tx *sql.Tx, l *Leave, reviewerID string) error {
	if s.outbox == nil {
		return nil
	}
	if l.Status != StatusApproved && l.Status != StatusRejected {
		return nil
	}

	payload, err := json.Marshal(events.LeaveReviewedEvent{
		EventType:  "leave.reviewed",
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		TotalDays:  l.TotalDays,
		Status:     l.Status,
		ReviewedBy: reviewerID,
		OccurredAt: s.clk.Now(),
	})
	if err != nil {
		return err
	}

	md := contextutil.ExtractMetadata(ctx)
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     md.RequestID,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     "leave.reviewed",
		Topic:         events.LeaveReviewedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
