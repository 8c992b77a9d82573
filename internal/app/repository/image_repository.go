package repository

import (
	"github.com/ikkim/bestfoody-backend/internal/app/model"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// CreateImage 이미지 메타데이터 저장
func (r *ImageRepository) CreateImage(image *model.RestaurantImage) error {
	return r.db.Create(image).Error
}

// GetImageByIDAndUserID 업로더 본인 소유의 이미지만 조회.
// 다른 사용자의 이미지는 존재하지 않는 것으로 취급한다
func (r *ImageRepository) GetImageByIDAndUserID(id, userID uint) (*model.RestaurantImage, error) {
	var image model.RestaurantImage
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}
