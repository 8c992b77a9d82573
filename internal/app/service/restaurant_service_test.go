package service

import (
	"testing"

	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRestaurantServiceTest(t *testing.T) (*gorm.DB, RestaurantService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	restaurantRepo := repository.NewRestaurantRepository(testDB)
	imageRepo := repository.NewImageRepository(testDB)
	return testDB, NewRestaurantService(testDB, restaurantRepo, imageRepo)
}

func seedImage(t *testing.T, testDB *gorm.DB, userID uint) *model.RestaurantImage {
	image := &model.RestaurantImage{
		URL:    "https://cdn.example.com/restaurants/test.jpg",
		UserID: userID,
	}
	require.NoError(t, testDB.Create(image).Error)
	return image
}

func categoryPtr(c model.RestaurantCategory) *model.RestaurantCategory {
	return &c
}

// 레스토랑 생성 시 빈 집계 행도 함께 만들어진다
func TestRestaurantService_CreateRestaurant(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	owner := seedUser(t, testDB, "owner@example.com")

	restaurant, err := svc.CreateRestaurant(owner.ID, "Tandoori House", model.CategoryIndian, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tandoori House", restaurant.Name)
	assert.Equal(t, owner.ID, restaurant.UserID)

	require.NotNil(t, restaurant.Rating)
	assert.Equal(t, 0.0, restaurant.Rating.AverageRating)
	assert.Equal(t, 0, restaurant.Rating.ReviewCount)
}

func TestRestaurantService_CreateRestaurant_InvalidCategory(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	owner := seedUser(t, testDB, "owner@example.com")

	_, err := svc.CreateRestaurant(owner.ID, "Mystery Diner", "KOREAN", nil)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

// 본인 이미지만 연결할 수 있다. 타인 이미지도 NotFound로 처리
func TestRestaurantService_CreateRestaurant_ImageOwnership(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	owner := seedUser(t, testDB, "owner@example.com")
	stranger := seedUser(t, testDB, "stranger@example.com")
	ownImage := seedImage(t, testDB, owner.ID)
	otherImage := seedImage(t, testDB, stranger.ID)

	restaurant, err := svc.CreateRestaurant(owner.ID, "Tandoori House", model.CategoryIndian, &ownImage.ID)
	require.NoError(t, err)
	require.NotNil(t, restaurant.ImageID)
	assert.Equal(t, ownImage.ID, *restaurant.ImageID)

	_, err = svc.CreateRestaurant(owner.ID, "Another Place", model.CategoryIndian, &otherImage.ID)
	assert.ErrorIs(t, err, ErrImageNotFound)

	missing := uint(9999)
	_, err = svc.CreateRestaurant(owner.ID, "Yet Another", model.CategoryIndian, &missing)
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestRestaurantService_GetRestaurantByID_NotFound(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.GetRestaurantByID(9999)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestRestaurantService_UpdateRestaurant(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	owner := seedUser(t, testDB, "owner@example.com")
	other := seedUser(t, testDB, "other@example.com")

	restaurant, err := svc.CreateRestaurant(owner.ID, "Old Name", model.CategoryChinese, nil)
	require.NoError(t, err)

	// 소유자가 아니면 거부
	_, err = svc.UpdateRestaurant(other.ID, restaurant.ID, RestaurantMutation{Name: textPtr("Hijacked")})
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)

	// 빈 수정 거부
	_, err = svc.UpdateRestaurant(owner.ID, restaurant.ID, RestaurantMutation{})
	assert.ErrorIs(t, err, ErrEmptyMutation)

	// 잘못된 카테고리 거부
	_, err = svc.UpdateRestaurant(owner.ID, restaurant.ID, RestaurantMutation{Category: categoryPtr("FRENCH")})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	// 이름만 수정하면 카테고리는 유지된다
	updated, err := svc.UpdateRestaurant(owner.ID, restaurant.ID, RestaurantMutation{Name: textPtr("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, model.CategoryChinese, updated.Category)

	// 카테고리 수정
	updated, err = svc.UpdateRestaurant(owner.ID, restaurant.ID, RestaurantMutation{Category: categoryPtr(model.CategoryItalian)})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, model.CategoryItalian, updated.Category)
}

func TestRestaurantService_UpdateRestaurant_ImageOwnership(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	owner := seedUser(t, testDB, "owner@example.com")
	stranger := seedUser(t, testDB, "stranger@example.com")
	otherImage := seedImage(t, testDB, stranger.ID)

	restaurant, err := svc.CreateRestaurant(owner.ID, "Tandoori House", model.CategoryIndian, nil)
	require.NoError(t, err)

	_, err = svc.UpdateRestaurant(owner.ID, restaurant.ID, RestaurantMutation{ImageID: &otherImage.ID})
	assert.ErrorIs(t, err, ErrImageNotFound)

	ownImage := seedImage(t, testDB, owner.ID)
	updated, err := svc.UpdateRestaurant(owner.ID, restaurant.ID, RestaurantMutation{ImageID: &ownImage.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.ImageID)
	assert.Equal(t, ownImage.ID, *updated.ImageID)
}

func TestRestaurantService_DeleteRestaurant(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	owner := seedUser(t, testDB, "owner@example.com")
	other := seedUser(t, testDB, "other@example.com")

	restaurant, err := svc.CreateRestaurant(owner.ID, "Tandoori House", model.CategoryIndian, nil)
	require.NoError(t, err)

	err = svc.DeleteRestaurant(other.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)

	require.NoError(t, svc.DeleteRestaurant(owner.ID, restaurant.ID))

	_, err = svc.GetRestaurantByID(restaurant.ID)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	// 이미 삭제된 레스토랑은 NotFound
	err = svc.DeleteRestaurant(owner.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestRestaurantService_ListRestaurants(t *testing.T) {
	testDB, svc := setupRestaurantServiceTest(t)
	defer db.CleanupTestDB(testDB)

	owner := seedUser(t, testDB, "owner@example.com")
	_, err := svc.CreateRestaurant(owner.ID, "Tandoori House", model.CategoryIndian, nil)
	require.NoError(t, err)

	page, err := svc.ListRestaurants(repository.RestaurantFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Restaurants, 1)

	// 잘못된 카테고리 필터 거부
	_, err = svc.ListRestaurants(repository.RestaurantFilter{Category: "KOREAN"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	// 삭제되었거나 존재하지 않는 커서는 NotFound
	_, err = svc.ListRestaurants(repository.RestaurantFilter{Cursor: 9999})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
