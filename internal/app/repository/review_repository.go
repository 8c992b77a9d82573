package repository

import (
	"errors"

	"github.com/ikkim/bestfoody-backend/internal/app/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview 리뷰 생성
func (r *ReviewRepository) CreateReview(review *model.Review) error {
	return r.db.Create(review).Error
}

// GetReviewByID ID로 리뷰 조회
func (r *ReviewRepository) GetReviewByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("User").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewsByRestaurantID 레스토랑별 활성 리뷰 목록 (최신순)
func (r *ReviewRepository) GetReviewsByRestaurantID(restaurantID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetUserReviewForRestaurant 해당 레스토랑에 대한 사용자의 활성 리뷰 조회.
// 없으면 (nil, nil)
func (r *ReviewRepository) GetUserReviewForRestaurant(userID, restaurantID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// UpdateReview 리뷰 수정
func (r *ReviewRepository) UpdateReview(review *model.Review) error {
	return r.db.Save(review).Error
}

// DeleteReview 리뷰 소프트 삭제
func (r *ReviewRepository) DeleteReview(id uint) error {
	return r.db.Delete(&model.Review{}, id).Error
}
