package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/karanprajapat824/hr-system/internal/attendance"
	autherrors "github.com/karanprajapat824/hr-system/internal/auth/errors"
	"github.com/karanprajapat824/hr-system/internal/employee"
	employeeerrors "github.com/karanprajapat824/hr-system/internal/employee/errors"
	"github.com/karanprajapat824/hr-system/internal/leave"
	"github.com/karanprajapat824/hr-system/internal/shared/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// recentLeaveCount limits the user-info aggregate to the latest requests.
const recentLeaveCount = 3

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (accessToken, refreshToken string, resp AuthResponse, err error)
	SignIn(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
	UserInfo(ctx context.Context, employeeID string) (UserInfoResponse, error)
}

type service struct {
	employees   employee.Repository
	leaves      leave.Service
	attendances attendance.Service
	clk         clock.Clock
	logger      *zap.Logger
}

func NewService(
	employees employee.Repository,
	leaves leave.Service,
	attendances attendance.Service,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		employees:   employees,
		leaves:      leaves,
		attendances: attendances,
		clk:         clk,
		logger:      l,
	}
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (string, string, AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	emp := &employee.Employee{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashed),
		Phone:         req.Phone,
		Department:    req.Department,
		Role:          employee.RoleEmployee,
		DateOfJoining: s.clk.Now(),
		CasualBalance: employee.DefaultCasualBalance,
		SickBalance:   employee.DefaultSickBalance,
		PaidBalance:   employee.DefaultPaidBalance,
	}

	if err := s.employees.Create(ctx, emp); err != nil {
		s.logger.Warn("sign-up create failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return "", "", AuthResponse{}, employee.MapRepositoryError(err)
	}

	accessToken, err := s.generateToken(emp, AccessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(emp, RefreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("sign-up success",
		zap.String("employee_id", emp.ID.String()),
		zap.String("email", emp.Email),
	)
	return accessToken, refreshToken, mapToAuthResponse(emp), nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	emp, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(emp, AccessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(emp, RefreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapToAuthResponse(emp), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	newAccessToken, err := s.generateToken(emp, AccessTokenTTL)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, mapToAuthResponse(emp), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	resp := mapToAuthResponse(emp)
	return &resp, nil
}

// UserInfo aggregates the home-screen data for an employee: remaining
// balance, today's attendance record and the 3 most recent leaves.
func (s *service) UserInfo(ctx context.Context, employeeID string) (UserInfoResponse, error) {
	balance, err := s.leaves.RemainingBalance(ctx, employeeID)
	if err != nil {
		return UserInfoResponse{}, err
	}

	today, err := s.attendances.Today(ctx, employeeID)
	if err != nil {
		return UserInfoResponse{}, err
	}

	recent, err := s.leaves.History(ctx, employeeID, recentLeaveCount)
	if err != nil {
		return UserInfoResponse{}, err
	}

	return UserInfoResponse{
		LeaveBalance: balance,
		Attendance:   today,
		Leaves:       recent,
	}, nil
}

func (s *service) generateToken(emp *employee.Employee, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": emp.ID.String(),
		"role":        emp.Role,
		"email":       emp.Email,
		"name":        emp.Name,
		"exp":         s.clk.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(emp *employee.Employee) AuthResponse {
	return AuthResponse{
		ID:    emp.ID.String(),
		Email: emp.Email,
		Name:  emp.Name,
		Role:  emp.Role,
	}
}
