package service

import (
	"errors"
	"strings"

	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound     = errors.New("리뷰를 찾을 수 없습니다")
	ErrReviewAccessDenied = errors.New("리뷰에 대한 권한이 없습니다")
	ErrAlreadyReviewed    = errors.New("이미 이 레스토랑에 리뷰를 작성했습니다")
	ErrInvalidRating      = errors.New("평점은 1에서 5 사이여야 합니다")
)

// ReviewMutation 리뷰 부분 수정 입력
type ReviewMutation struct {
	Rating     *int
	ReviewText *string
}

type ReviewService struct {
	reviewRepo     *repository.ReviewRepository
	restaurantRepo repository.RestaurantRepository
	ratingService  RatingService
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	restaurantRepo repository.RestaurantRepository,
	ratingService RatingService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		restaurantRepo: restaurantRepo,
		ratingService:  ratingService,
	}
}

// CreateReview 리뷰 작성. 사용자당 레스토랑별 활성 리뷰 1개만 허용.
// 저장 후 해당 레스토랑 집계를 동기 재계산한다
func (s *ReviewService) CreateReview(userID, restaurantID uint, rating int, reviewText *string) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"restaurant_id": restaurantID,
		"user_id":       userID,
		"rating":        rating,
	})

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	existing, err := s.reviewRepo.GetUserReviewForRestaurant(userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Review creation rejected: already reviewed", map[string]interface{}{
			"restaurant_id": restaurantID,
			"user_id":       userID,
		})
		return nil, ErrAlreadyReviewed
	}

	review := &model.Review{
		RestaurantID: restaurantID,
		UserID:       userID,
		Rating:       rating,
		ReviewText:   reviewText,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		// 사전 조회와 insert 사이에 동시 요청이 끼어든 경우
		// 부분 유니크 인덱스가 잡아준다
		if isDuplicateKeyError(err) {
			return nil, ErrAlreadyReviewed
		}
		logger.Error("Failed to create review", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"user_id":       userID,
		})
		return nil, err
	}

	if _, err := s.ratingService.Recompute(restaurantID); err != nil {
		// 리뷰는 이미 커밋됨. 집계는 다음 재계산에서 복구된다
		logger.Error("Rating recompute failed after review create", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"review_id":     review.ID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":     review.ID,
		"restaurant_id": restaurantID,
	})
	return s.reviewRepo.GetReviewByID(review.ID)
}

// GetRestaurantReviews 레스토랑의 활성 리뷰 목록 (최신순)
func (s *ReviewService) GetRestaurantReviews(restaurantID uint) ([]model.Review, error) {
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.reviewRepo.GetReviewsByRestaurantID(restaurantID)
}

// UpdateReview 본인 리뷰 수정. 경로의 레스토랑과 리뷰의 레스토랑이
// 다르면 NotFound 처리한다
func (s *ReviewService) UpdateReview(userID, restaurantID, reviewID uint, mutation ReviewMutation) (*model.Review, error) {
	logger.Info("Updating review", map[string]interface{}{
		"review_id":     reviewID,
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})

	if mutation.Rating == nil && mutation.ReviewText == nil {
		return nil, ErrEmptyMutation
	}
	if mutation.Rating != nil && (*mutation.Rating < 1 || *mutation.Rating > 5) {
		return nil, ErrInvalidRating
	}

	review, err := s.findRestaurantReview(restaurantID, reviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		logger.Warn("Review update denied: not the author", map[string]interface{}{
			"review_id": reviewID,
			"author_id": review.UserID,
			"user_id":   userID,
		})
		return nil, ErrReviewAccessDenied
	}

	if mutation.Rating != nil {
		review.Rating = *mutation.Rating
	}
	if mutation.ReviewText != nil {
		review.ReviewText = mutation.ReviewText
	}

	if err := s.reviewRepo.UpdateReview(review); err != nil {
		logger.Error("Failed to update review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}

	if _, err := s.ratingService.Recompute(restaurantID); err != nil {
		logger.Error("Rating recompute failed after review update", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"review_id":     reviewID,
		})
		return nil, err
	}

	return s.reviewRepo.GetReviewByID(reviewID)
}

// DeleteReview 본인 리뷰 소프트 삭제 후 집계 재계산
func (s *ReviewService) DeleteReview(userID, restaurantID, reviewID uint) error {
	logger.Info("Deleting review", map[string]interface{}{
		"review_id":     reviewID,
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})

	review, err := s.findRestaurantReview(restaurantID, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		logger.Warn("Review delete denied: not the author", map[string]interface{}{
			"review_id": reviewID,
			"author_id": review.UserID,
			"user_id":   userID,
		})
		return ErrReviewAccessDenied
	}

	if err := s.reviewRepo.DeleteReview(reviewID); err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	if _, err := s.ratingService.Recompute(restaurantID); err != nil {
		logger.Error("Rating recompute failed after review delete", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"review_id":     reviewID,
		})
		return err
	}

	return nil
}

// findRestaurantReview 리뷰 조회 + 경로 레스토랑 일치 확인
func (s *ReviewService) findRestaurantReview(restaurantID, reviewID uint) (*model.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.RestaurantID != restaurantID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// isDuplicateKeyError 활성 리뷰 유니크 인덱스 위반 여부 (postgres/sqlite)
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
