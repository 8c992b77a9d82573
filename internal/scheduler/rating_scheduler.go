package scheduler

import (
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/internal/app/service"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RatingScheduler 평점 집계 재동기화 스케줄러.
// 리뷰 저장과 집계 upsert 사이에 프로세스가 죽으면 집계가 stale해질 수 있다.
// 재계산은 항상 전체 리뷰 기준이므로 주기 실행만으로 복구된다.
type RatingScheduler struct {
	cron           *cron.Cron
	restaurantRepo repository.RestaurantRepository
	ratingService  service.RatingService
}

// NewRatingScheduler 평점 재동기화 스케줄러 생성
func NewRatingScheduler(restaurantRepo repository.RestaurantRepository, ratingService service.RatingService) *RatingScheduler {
	return &RatingScheduler{
		cron:           cron.New(),
		restaurantRepo: restaurantRepo,
		ratingService:  ratingService,
	}
}

// Start 스케줄러 시작 (매일 새벽 4시)
func (s *RatingScheduler) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		s.ReconcileAll()
	})
	if err != nil {
		logger.Error("Failed to add cron job for rating reconciliation", err)
		return err
	}

	s.cron.Start()
	logger.Info("Rating scheduler started successfully (daily at 4:00 AM)", nil)
	return nil
}

// ReconcileAll 모든 활성 레스토랑의 집계를 재계산한다
func (s *RatingScheduler) ReconcileAll() {
	logger.Info("Starting scheduled rating reconciliation", nil)

	ids, err := s.restaurantRepo.FindAllIDs()
	if err != nil {
		logger.Error("Failed to list restaurants for rating reconciliation", err)
		return
	}

	failed := 0
	for _, id := range ids {
		if _, err := s.ratingService.Recompute(id); err != nil {
			failed++
			logger.Error("Failed to recompute rating", err, map[string]interface{}{
				"restaurant_id": id,
			})
		}
	}

	logger.Info("Rating reconciliation completed", map[string]interface{}{
		"total":  len(ids),
		"failed": failed,
	})
}

// Stop 스케줄러 중지
func (s *RatingScheduler) Stop() {
	logger.Info("Stopping rating scheduler...", nil)
	s.cron.Stop()
	logger.Info("Rating scheduler stopped", nil)
}
