package service

import (
	"context"

	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// DashboardOverview bundles the headline stats with the recent-activity feed
type DashboardOverview struct {
	Stats          *repository.DashboardStats `json:"stats"`
	RecentActivity []*repository.ActivityItem `json:"recent_activity"`
}

// DashboardService aggregates across the other domains
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	logger        *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo *repository.DashboardRepository, log *logger.Logger) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		logger:        log,
	}
}

// Overview returns headline counts plus the five newest activity entries
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	stats, err := s.dashboardRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	activity, err := s.dashboardRepo.RecentActivity(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		Stats:          stats,
		RecentActivity: activity,
	}, nil
}
