package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bestfoody-backend/internal/app/service"
	apperrors "github.com/ikkim/bestfoody-backend/internal/errors"
	"github.com/ikkim/bestfoody-backend/internal/middleware"
)

type ImageController struct {
	imageService *service.ImageService
}

func NewImageController(imageService *service.ImageService) *ImageController {
	return &ImageController{
		imageService: imageService,
	}
}

// UploadImage 레스토랑 이미지 업로드 (multipart/form-data, 필드명 "image")
func (ctrl *ImageController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "이미지 파일이 필요합니다")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		apperrors.InternalError(c, "업로드 처리에 실패했습니다")
		return
	}
	defer file.Close()

	image, err := ctrl.imageService.UploadImage(
		c.Request.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidImageType):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "지원하지 않는 이미지 형식입니다")
		case errors.Is(err, service.ErrImageTooLarge):
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "이미지 크기가 너무 큽니다")
		default:
			log.Error("Image upload failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "이미지 업로드에 실패했습니다")
		}
		return
	}

	log.Info("Image uploaded", map[string]interface{}{
		"image_id": image.ID,
		"user_id":  userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"image":   image,
	})
}
