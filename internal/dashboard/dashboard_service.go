package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/karanprajapat824/hr-system/internal/attendance"
	"github.com/karanprajapat824/hr-system/internal/employee"
	"github.com/karanprajapat824/hr-system/internal/leave"
	"github.com/karanprajapat824/hr-system/internal/shared/clock"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	overviewCacheKey = "dashboard:overview"
	overviewCacheTTL = 30 * time.Second
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Overview(ctx context.Context) (OverviewResponse, error)
}

type service struct {
	employees   employee.Repository
	leaves      leave.Service
	attendances attendance.Repository
	rdb         *redis.Client
	clk         clock.Clock
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	employees employee.Repository,
	leaves leave.Service,
	attendances attendance.Repository,
	rdb *redis.Client,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		employees:   employees,
		leaves:      leaves,
		attendances: attendances,
		rdb:         rdb,
		clk:         clk,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

// Overview is the admin landing view. It is cached briefly and filled
// behind singleflight so a burst of admin reloads hits the store once.
func (s *service) Overview(ctx context.Context) (OverviewResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, overviewCacheKey).Result(); err == nil {
			var resp OverviewResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(overviewCacheKey, func() (any, error) {
		return s.buildOverview(ctx)
	})
	if err != nil {
		return OverviewResponse{}, err
	}

	resp := v.(OverviewResponse)

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, overviewCacheKey, payload, overviewCacheTTL).Err(); err != nil {
				s.logger.Warn("overview cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *service) buildOverview(ctx context.Context) (OverviewResponse, error) {
	totalEmployees, err := s.employees.CountByRole(ctx, employee.RoleEmployee)
	if err != nil {
		s.logger.Error("overview employee count failed", zap.Error(err))
		return OverviewResponse{}, err
	}

	pendingLeaves, err := s.leaves.PendingLeaves(ctx)
	if err != nil {
		s.logger.Error("overview pending leaves failed", zap.Error(err))
		return OverviewResponse{}, err
	}

	today := clock.Truncate(s.clk.Now())
	presentToday, err := s.attendances.CountPresentOn(ctx, today)
	if err != nil {
		s.logger.Error("overview present count failed", zap.Error(err))
		return OverviewResponse{}, err
	}

	return OverviewResponse{
		TotalEmployees:  totalEmployees,
		PendingRequests: len(pendingLeaves),
		PresentToday:    presentToday,
		PendingLeaves:   pendingLeaves,
	}, nil
}
