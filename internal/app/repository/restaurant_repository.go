package repository

import (
	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
	"gorm.io/gorm"
)

// 목록 조회 기본 페이지 크기
const DefaultPageSize = 10

type RestaurantFilter struct {
	Category model.RestaurantCategory
	Name     string
	Cursor   uint // 직전 페이지 마지막 레스토랑 ID (0이면 처음부터)
	Take     int
}

type RestaurantPage struct {
	Restaurants []model.Restaurant
	NextCursor  *uint
}

type RestaurantRepository interface {
	Create(restaurant *model.Restaurant) error
	Update(restaurant *model.Restaurant) error
	Delete(id uint) error
	FindAll(filter RestaurantFilter) (*RestaurantPage, error)
	FindByID(id uint) (*model.Restaurant, error)
	FindAllIDs() ([]uint, error)
	BulkCreate(restaurants []model.Restaurant, batchSize int) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *model.Restaurant) error {
	logger.Debug("Creating restaurant in database", map[string]interface{}{
		"name":     restaurant.Name,
		"category": restaurant.Category,
		"userID":   restaurant.UserID,
	})

	if err := r.db.Create(restaurant).Error; err != nil {
		logger.Error("Failed to create restaurant in database", err, map[string]interface{}{
			"name":     restaurant.Name,
			"category": restaurant.Category,
			"userID":   restaurant.UserID,
		})
		return err
	}

	logger.Debug("Restaurant created in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"name":          restaurant.Name,
	})
	return nil
}

func (r *restaurantRepository) Update(restaurant *model.Restaurant) error {
	logger.Debug("Updating restaurant in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"name":          restaurant.Name,
	})

	if err := r.db.Save(restaurant).Error; err != nil {
		logger.Error("Failed to update restaurant in database", err, map[string]interface{}{
			"restaurant_id": restaurant.ID,
		})
		return err
	}

	logger.Debug("Restaurant updated in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
	})
	return nil
}

func (r *restaurantRepository) Delete(id uint) error {
	logger.Debug("Deleting restaurant from database", map[string]interface{}{
		"restaurant_id": id,
	})

	if err := r.db.Delete(&model.Restaurant{}, id).Error; err != nil {
		logger.Error("Failed to delete restaurant from database", err, map[string]interface{}{
			"restaurant_id": id,
		})
		return err
	}

	logger.Debug("Restaurant deleted from database", map[string]interface{}{
		"restaurant_id": id,
	})
	return nil
}

// FindAll 평점 내림차순 키셋 페이지네이션 목록 조회.
// 평점이 같은 레스토랑은 ID 오름차순으로 정렬되므로 커서 기준으로
// 페이지가 겹치거나 빠지는 행이 없다.
func (r *restaurantRepository) FindAll(filter RestaurantFilter) (*RestaurantPage, error) {
	logger.Debug("Finding restaurants", map[string]interface{}{
		"category": filter.Category,
		"name":     filter.Name,
		"cursor":   filter.Cursor,
	})

	take := filter.Take
	if take <= 0 {
		take = DefaultPageSize
	}

	query := r.db.Model(&model.Restaurant{}).
		Joins("LEFT JOIN restaurant_ratings ON restaurant_ratings.restaurant_id = restaurants.id").
		Preload("Rating").
		Preload("Image")

	if filter.Category != "" {
		query = query.Where("restaurants.category = ?", filter.Category)
	}
	if filter.Name != "" {
		query = query.Where("restaurants.name LIKE ?", "%"+filter.Name+"%")
	}

	if filter.Cursor != 0 {
		cursorRating, err := r.ratingOf(filter.Cursor)
		if err != nil {
			logger.Error("Failed to resolve list cursor", err, map[string]interface{}{
				"cursor": filter.Cursor,
			})
			return nil, err
		}
		query = query.Where(
			"COALESCE(restaurant_ratings.average_rating, 0) < ? OR (COALESCE(restaurant_ratings.average_rating, 0) = ? AND restaurants.id > ?)",
			cursorRating, cursorRating, filter.Cursor,
		)
	}

	var restaurants []model.Restaurant
	err := query.
		Order("COALESCE(restaurant_ratings.average_rating, 0) DESC, restaurants.id ASC").
		Limit(take).
		Find(&restaurants).Error
	if err != nil {
		logger.Error("Failed to find restaurants", err, map[string]interface{}{
			"category": filter.Category,
			"name":     filter.Name,
		})
		return nil, err
	}

	page := &RestaurantPage{Restaurants: restaurants}
	if len(restaurants) == take {
		last := restaurants[len(restaurants)-1].ID
		page.NextCursor = &last
	}

	logger.Debug("Restaurants found", map[string]interface{}{
		"count": len(restaurants),
	})
	return page, nil
}

// ratingOf 커서 레스토랑의 현재 집계 평점 조회 (집계 행이 없으면 0)
func (r *restaurantRepository) ratingOf(id uint) (float64, error) {
	var row struct {
		Rating float64
	}
	err := r.db.Model(&model.Restaurant{}).
		Select("COALESCE(restaurant_ratings.average_rating, 0) AS rating").
		Joins("LEFT JOIN restaurant_ratings ON restaurant_ratings.restaurant_id = restaurants.id").
		Where("restaurants.id = ?", id).
		Take(&row).Error
	if err != nil {
		return 0, err
	}
	return row.Rating, nil
}

func (r *restaurantRepository) FindByID(id uint) (*model.Restaurant, error) {
	logger.Debug("Finding restaurant by ID in database", map[string]interface{}{
		"restaurant_id": id,
	})

	var restaurant model.Restaurant
	err := r.db.Preload("Rating").Preload("Image").First(&restaurant, id).Error
	if err != nil {
		logger.Error("Failed to find restaurant by ID in database", err, map[string]interface{}{
			"restaurant_id": id,
		})
		return nil, err
	}

	logger.Debug("Restaurant found by ID in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
	})
	return &restaurant, nil
}

// FindAllIDs 활성 레스토랑 ID 전체 조회 (집계 재동기화용)
func (r *restaurantRepository) FindAllIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Restaurant{}).Order("id ASC").Pluck("id", &ids).Error
	if err != nil {
		logger.Error("Failed to list restaurant IDs", err, nil)
		return nil, err
	}
	return ids, nil
}

func (r *restaurantRepository) BulkCreate(restaurants []model.Restaurant, batchSize int) error {
	logger.Debug("Bulk creating restaurants in database", map[string]interface{}{
		"count":      len(restaurants),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(restaurants, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create restaurants", err, map[string]interface{}{
			"count": len(restaurants),
		})
		return err
	}
	return nil
}
