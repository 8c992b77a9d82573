package service

import (
	"math"

	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
)

type RatingService interface {
	Recompute(restaurantID uint) (*model.RestaurantRating, error)
}

type ratingService struct {
	ratingRepo *repository.RatingRepository
	reviewRepo *repository.ReviewRepository
}

func NewRatingService(ratingRepo *repository.RatingRepository, reviewRepo *repository.ReviewRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		reviewRepo: reviewRepo,
	}
}

// Recompute 레스토랑의 활성 리뷰 전체를 읽어 집계를 다시 계산한다.
// 증분 갱신이 아닌 전체 재계산이므로 이전 집계가 어떤 상태였든
// 호출 후에는 항상 현재 리뷰와 일치한다.
// 평균은 소수점 첫째 자리로 반올림, 리뷰가 없으면 0/0.
func (s *ratingService) Recompute(restaurantID uint) (*model.RestaurantRating, error) {
	reviews, err := s.reviewRepo.GetReviewsByRestaurantID(restaurantID)
	if err != nil {
		logger.Error("Failed to load reviews for rating recompute", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}

	count := len(reviews)
	average := 0.0
	if count > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		average = math.Round(float64(sum)/float64(count)*10) / 10
	}

	rating, err := s.ratingRepo.Upsert(restaurantID, average, count)
	if err != nil {
		logger.Error("Failed to upsert restaurant rating", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}

	logger.Debug("Restaurant rating recomputed", map[string]interface{}{
		"restaurant_id":  restaurantID,
		"average_rating": average,
		"review_count":   count,
	})
	return rating, nil
}
