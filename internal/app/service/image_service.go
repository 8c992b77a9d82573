package service

import (
	"context"
	"errors"
	"io"

	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/internal/storage"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
)

var (
	ErrInvalidImageType = errors.New("지원하지 않는 이미지 형식입니다")
	ErrImageTooLarge    = errors.New("이미지 크기가 너무 큽니다")
)

// ImageService 이미지 업로드 및 소유권 기록
type ImageService struct {
	imageRepo *repository.ImageRepository
	storage   *storage.S3Storage
}

func NewImageService(imageRepo *repository.ImageRepository, s3 *storage.S3Storage) *ImageService {
	return &ImageService{
		imageRepo: imageRepo,
		storage:   s3,
	}
}

// UploadImage 이미지를 S3에 올리고 업로더 소유로 메타데이터를 저장한다
func (s *ImageService) UploadImage(ctx context.Context, userID uint, filename, contentType string, size int64, body io.Reader) (*model.RestaurantImage, error) {
	logger.Info("Uploading restaurant image", map[string]interface{}{
		"user_id":      userID,
		"filename":     filename,
		"content_type": contentType,
		"size":         size,
	})

	if err := s.storage.ValidateContentType(contentType, storage.AllowedImageTypes); err != nil {
		return nil, ErrInvalidImageType
	}
	if err := s.storage.ValidateFileSize(size, storage.MaxImageSize); err != nil {
		return nil, ErrImageTooLarge
	}

	url, err := s.storage.Upload(ctx, filename, contentType, body)
	if err != nil {
		logger.Error("Failed to upload image to storage", err, map[string]interface{}{
			"user_id":  userID,
			"filename": filename,
		})
		return nil, err
	}

	image := &model.RestaurantImage{
		URL:    url,
		UserID: userID,
	}
	if err := s.imageRepo.CreateImage(image); err != nil {
		logger.Error("Failed to save image metadata", err, map[string]interface{}{
			"user_id": userID,
			"url":     url,
		})
		return nil, err
	}

	logger.Info("Restaurant image uploaded", map[string]interface{}{
		"image_id": image.ID,
		"user_id":  userID,
	})
	return image, nil
}
