package repository

import (
	"time"

	"github.com/ikkim/bestfoody-backend/internal/app/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert 레스토랑 평점 집계 저장.
// restaurant_id 기준으로 없으면 생성, 있으면 덮어쓴다 (last-writer-wins).
func (r *RatingRepository) Upsert(restaurantID uint, averageRating float64, reviewCount int) (*model.RestaurantRating, error) {
	rating := model.RestaurantRating{
		RestaurantID:  restaurantID,
		AverageRating: averageRating,
		ReviewCount:   reviewCount,
		LastUpdated:   time.Now(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"average_rating", "review_count", "last_updated", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return nil, err
	}

	return r.GetByRestaurantID(restaurantID)
}

// GetByRestaurantID 레스토랑의 집계 행 조회
func (r *RatingRepository) GetByRestaurantID(restaurantID uint) (*model.RestaurantRating, error) {
	var rating model.RestaurantRating
	err := r.db.Where("restaurant_id = ?", restaurantID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
