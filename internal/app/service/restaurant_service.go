package service

import (
	"errors"
	"time"

	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound     = errors.New("레스토랑을 찾을 수 없습니다")
	ErrRestaurantAccessDenied = errors.New("레스토랑에 대한 권한이 없습니다")
	ErrImageNotFound          = errors.New("이미지를 찾을 수 없습니다")
	ErrInvalidCategory        = errors.New("유효하지 않은 카테고리입니다")
	ErrEmptyMutation          = errors.New("수정할 필드가 없습니다")
)

// RestaurantMutation 부분 수정 입력. nil 필드는 기존 값 유지
type RestaurantMutation struct {
	Name     *string
	Category *model.RestaurantCategory
	ImageID  *uint
}

type RestaurantService interface {
	CreateRestaurant(userID uint, name string, category model.RestaurantCategory, imageID *uint) (*model.Restaurant, error)
	GetRestaurantByID(id uint) (*model.Restaurant, error)
	ListRestaurants(filter repository.RestaurantFilter) (*repository.RestaurantPage, error)
	UpdateRestaurant(userID, restaurantID uint, mutation RestaurantMutation) (*model.Restaurant, error)
	DeleteRestaurant(userID, restaurantID uint) error
}

type restaurantService struct {
	db             *gorm.DB
	restaurantRepo repository.RestaurantRepository
	imageRepo      *repository.ImageRepository
}

func NewRestaurantService(
	db *gorm.DB,
	restaurantRepo repository.RestaurantRepository,
	imageRepo *repository.ImageRepository,
) RestaurantService {
	return &restaurantService{
		db:             db,
		restaurantRepo: restaurantRepo,
		imageRepo:      imageRepo,
	}
}

func (s *restaurantService) CreateRestaurant(userID uint, name string, category model.RestaurantCategory, imageID *uint) (*model.Restaurant, error) {
	logger.Info("Creating restaurant", map[string]interface{}{
		"name":     name,
		"category": category,
		"user_id":  userID,
	})

	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	if imageID != nil {
		if err := s.checkImageOwnership(*imageID, userID); err != nil {
			return nil, err
		}
	}

	restaurant := &model.Restaurant{
		Name:     name,
		Category: category,
		UserID:   userID,
		ImageID:  imageID,
	}

	// 레스토랑과 빈 집계 행을 한 트랜잭션으로 생성한다.
	// 목록 정렬이 집계 행에 의존하므로 집계 없는 레스토랑을 남기지 않는다.
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(restaurant).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create restaurant", err, map[string]interface{}{
			"name":    name,
			"user_id": userID,
		})
		return nil, err
	}

	rating := &model.RestaurantRating{
		RestaurantID:  restaurant.ID,
		AverageRating: 0,
		ReviewCount:   0,
		LastUpdated:   time.Now(),
	}
	if err := tx.Create(rating).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create empty rating for restaurant", err, map[string]interface{}{
			"restaurant_id": restaurant.ID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Restaurant created", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"name":          name,
	})
	return s.restaurantRepo.FindByID(restaurant.ID)
}

func (s *restaurantService) GetRestaurantByID(id uint) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) ListRestaurants(filter repository.RestaurantFilter) (*repository.RestaurantPage, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	page, err := s.restaurantRepo.FindAll(filter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 커서가 가리키는 레스토랑이 삭제된 경우
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return page, nil
}

func (s *restaurantService) UpdateRestaurant(userID, restaurantID uint, mutation RestaurantMutation) (*model.Restaurant, error) {
	logger.Info("Updating restaurant", map[string]interface{}{
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})

	if mutation.Name == nil && mutation.Category == nil && mutation.ImageID == nil {
		return nil, ErrEmptyMutation
	}

	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	if restaurant.UserID != userID {
		logger.Warn("Restaurant update denied: not the owner", map[string]interface{}{
			"restaurant_id": restaurantID,
			"owner_id":      restaurant.UserID,
			"user_id":       userID,
		})
		return nil, ErrRestaurantAccessDenied
	}

	if mutation.Name != nil {
		restaurant.Name = *mutation.Name
	}
	if mutation.Category != nil {
		if !mutation.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		restaurant.Category = *mutation.Category
	}
	if mutation.ImageID != nil {
		if err := s.checkImageOwnership(*mutation.ImageID, userID); err != nil {
			return nil, err
		}
		restaurant.ImageID = mutation.ImageID
	}

	// Save가 preload된 연관까지 건드리지 않도록 대상 컬럼만 갱신
	err = s.db.Model(&model.Restaurant{}).
		Where("id = ?", restaurant.ID).
		Updates(map[string]interface{}{
			"name":     restaurant.Name,
			"category": restaurant.Category,
			"image_id": restaurant.ImageID,
		}).Error
	if err != nil {
		logger.Error("Failed to update restaurant", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}

	logger.Info("Restaurant updated", map[string]interface{}{
		"restaurant_id": restaurantID,
	})
	return s.restaurantRepo.FindByID(restaurantID)
}

func (s *restaurantService) DeleteRestaurant(userID, restaurantID uint) error {
	logger.Info("Deleting restaurant", map[string]interface{}{
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})

	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	}

	if restaurant.UserID != userID {
		logger.Warn("Restaurant delete denied: not the owner", map[string]interface{}{
			"restaurant_id": restaurantID,
			"owner_id":      restaurant.UserID,
			"user_id":       userID,
		})
		return ErrRestaurantAccessDenied
	}

	if err := s.restaurantRepo.Delete(restaurantID); err != nil {
		return err
	}

	logger.Info("Restaurant deleted", map[string]interface{}{
		"restaurant_id": restaurantID,
	})
	return nil
}

// checkImageOwnership 이미지가 존재하고 요청자 소유인지 확인.
// 타인 소유 이미지는 존재 여부를 노출하지 않고 동일하게 NotFound 처리
func (s *restaurantService) checkImageOwnership(imageID, userID uint) error {
	_, err := s.imageRepo.GetImageByIDAndUserID(imageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	return nil
}
