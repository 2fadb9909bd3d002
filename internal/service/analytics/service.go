package analytics

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

const (
	statsCacheTTL     = 30 * time.Second
	statsCacheCleanup = 5 * time.Minute
	frequencyLimit    = 10
)

type Service struct {
	analyticsRepo repository.AnalyticsRepository
	statsCache    *cache.Cache
	now           func() time.Time
}

func NewService(analyticsRepo repository.AnalyticsRepository) *Service {
	return &Service{
		analyticsRepo: analyticsRepo,
		statsCache:    cache.New(statsCacheTTL, statsCacheCleanup),
		now:           time.Now,
	}
}

// Stats returns the dashboard aggregates for a tenant, cached briefly since
// the dashboard polls them.
func (s *Service) Stats(ctx context.Context, tenantID string) (*model.DashboardStats, error) {
	if cached, ok := s.statsCache.Get(tenantID); ok {
		return cached.(*model.DashboardStats), nil
	}

	now := s.now()
	today := model.NewDate(now.Year(), now.Month(), now.Day())
	firstOfMonth := model.NewDate(now.Year(), now.Month(), 1)

	totalStudents, err := s.analyticsRepo.CountStudents(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch statistics", err)
	}

	visitsToday, err := s.analyticsRepo.CountVisitsOn(ctx, tenantID, today)
	if err != nil {
		return nil, apperr.Internal("failed to fetch statistics", err)
	}

	visitsThisMonth, err := s.analyticsRepo.CountVisitsSince(ctx, tenantID, firstOfMonth)
	if err != nil {
		return nil, apperr.Internal("failed to fetch statistics", err)
	}

	commonIllness, err := s.analyticsRepo.TopChiefComplaintSince(ctx, tenantID, firstOfMonth)
	if err != nil {
		return nil, apperr.Internal("failed to fetch statistics", err)
	}
	if commonIllness == "" {
		commonIllness = "N/A"
	}

	stats := &model.DashboardStats{
		TotalStudents:   totalStudents,
		VisitsToday:     visitsToday,
		VisitsThisMonth: visitsThisMonth,
		CommonIllness:   commonIllness,
	}
	s.statsCache.Set(tenantID, stats, cache.DefaultExpiration)
	return stats, nil
}

func (s *Service) IllnessFrequency(ctx context.Context, tenantID string) ([]*model.IllnessFrequency, error) {
	rows, err := s.analyticsRepo.IllnessFrequency(ctx, tenantID, frequencyLimit)
	if err != nil {
		return nil, apperr.Internal("failed to fetch illness frequency", err)
	}
	return rows, nil
}
