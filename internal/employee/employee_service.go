package employee

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, employeeID string) (EmployeeResponse, error)
	GetAllEmployees(ctx context.Context) ([]EmployeeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetProfile(ctx context.Context, employeeID string) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		s.logger.Warn("get profile failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return EmployeeResponse{}, MapRepositoryError(err)
	}
	return MapToResponse(*e), nil
}

func (s *service) GetAllEmployees(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAllByRole(ctx, RoleEmployee)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, MapRepositoryError(err)
	}
	return MapToListResponse(rows), nil
}
