package db

import (
	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
	"gorm.io/gorm"
)

// 활성 리뷰 유니크 인덱스.
// soft delete된 리뷰는 NULL이 아닌 deleted_at을 가지므로 제외되고,
// 같은 사용자가 같은 레스토랑에 다시 리뷰를 쓸 수 있다.
const activeReviewIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_active_user_restaurant
ON reviews (restaurant_id, user_id) WHERE deleted_at IS NULL`

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.RestaurantImage{},
		&model.Restaurant{},
		&model.RestaurantRating{},
		&model.Review{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := createPartialIndexes(DB); err != nil {
		logger.Error("Failed to create partial indexes", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// createPartialIndexes AutoMigrate가 표현하지 못하는 부분 유니크 인덱스 생성
func createPartialIndexes(db *gorm.DB) error {
	return db.Exec(activeReviewIndexSQL).Error
}
