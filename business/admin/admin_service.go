package admin

import (
	"context"

	"damaloy/domain"
	"damaloy/internal/repository/redis"
	"damaloy/pkg/logger"
)

// StatsRepository contract interface
type StatsRepository interface {
	AdminStats(ctx context.Context) (domain.AdminStats, error)
}

const statsCacheKey = "admin:stats"

type AdminService struct {
	statsRepo StatsRepository
	cache     *redis.Cache
}

func NewAdminService(statsRepo StatsRepository, cache *redis.Cache) *AdminService {
	return &AdminService{
		statsRepo: statsRepo,
		cache:     cache,
	}
}

// GetStats serves the dashboard aggregates, caching them briefly since
// the admin page polls.
func (s *AdminService) GetStats(ctx context.Context) (domain.AdminStats, error) {
	var cached domain.AdminStats
	hit, err := s.cache.Get(ctx, statsCacheKey, &cached)
	if err != nil {
		logger.Warn("Failed to read stats cache", "error", err)
	}
	if hit {
		return cached, nil
	}

	stats, err := s.statsRepo.AdminStats(ctx)
	if err != nil {
		return domain.AdminStats{}, err
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats); err != nil {
		logger.Warn("Failed to write stats cache", "error", err)
	}

	return stats, nil
}
