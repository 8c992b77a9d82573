package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/internal/app/service"
	apperrors "github.com/ikkim/bestfoody-backend/internal/errors"
	"github.com/ikkim/bestfoody-backend/internal/middleware"
)

type RestaurantController struct {
	restaurantService service.RestaurantService
}

func NewRestaurantController(restaurantService service.RestaurantService) *RestaurantController {
	return &RestaurantController{
		restaurantService: restaurantService,
	}
}

type CreateRestaurantRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	ImageID  *uint  `json:"image_id"`
}

type UpdateRestaurantRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	ImageID  *uint   `json:"image_id"`
}

// CreateRestaurant 레스토랑 등록
func (ctrl *RestaurantController) CreateRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid restaurant creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	restaurant, err := ctrl.restaurantService.CreateRestaurant(
		userID,
		req.Name,
		model.RestaurantCategory(req.Category),
		req.ImageID,
	)
	if err != nil {
		ctrl.respondError(c, err, "레스토랑 등록에 실패했습니다")
		return
	}

	log.Info("Restaurant created", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"user_id":       userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurant created successfully",
		"restaurant": restaurant,
	})
}

// GetRestaurants 레스토랑 목록 조회 (평점 내림차순, 커서 페이지네이션)
func (ctrl *RestaurantController) GetRestaurants(c *gin.Context) {
	filter := repository.RestaurantFilter{
		Category: model.RestaurantCategory(c.Query("category")),
		Name:     c.Query("name"),
	}

	if cursorStr := c.Query("cursor"); cursorStr != "" {
		cursor, err := strconv.ParseUint(cursorStr, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 커서입니다")
			return
		}
		filter.Cursor = uint(cursor)
	}
	if takeStr := c.Query("take"); takeStr != "" {
		take, err := strconv.Atoi(takeStr)
		if err != nil || take < 1 || take > 50 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "take는 1~50 사이여야 합니다")
			return
		}
		filter.Take = take
	}

	page, err := ctrl.restaurantService.ListRestaurants(filter)
	if err != nil {
		ctrl.respondError(c, err, "레스토랑 목록 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants": page.Restaurants,
		"next_cursor": page.NextCursor,
	})
}

// GetRestaurantByID 레스토랑 상세 조회
func (ctrl *RestaurantController) GetRestaurantByID(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	restaurant, err := ctrl.restaurantService.GetRestaurantByID(restaurantID)
	if err != nil {
		ctrl.respondError(c, err, "레스토랑 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant,
	})
}

// UpdateRestaurant 레스토랑 수정 (소유자만)
func (ctrl *RestaurantController) UpdateRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	restaurantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	mutation := service.RestaurantMutation{
		Name:    req.Name,
		ImageID: req.ImageID,
	}
	if req.Category != nil {
		category := model.RestaurantCategory(*req.Category)
		mutation.Category = &category
	}

	restaurant, err := ctrl.restaurantService.UpdateRestaurant(userID, restaurantID, mutation)
	if err != nil {
		ctrl.respondError(c, err, "레스토랑 수정에 실패했습니다")
		return
	}

	log.Info("Restaurant updated", map[string]interface{}{
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Restaurant updated successfully",
		"restaurant": restaurant,
	})
}

// DeleteRestaurant 레스토랑 삭제 (소유자만, soft delete)
func (ctrl *RestaurantController) DeleteRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	restaurantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.restaurantService.DeleteRestaurant(userID, restaurantID); err != nil {
		ctrl.respondError(c, err, "레스토랑 삭제에 실패했습니다")
		return
	}

	log.Info("Restaurant deleted", map[string]interface{}{
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurant deleted successfully",
		"id":      restaurantID,
	})
}

// respondError 서비스 에러를 HTTP 상태 코드로 변환
func (ctrl *RestaurantController) respondError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		apperrors.NotFound(c, apperrors.RestaurantNotFound, "레스토랑을 찾을 수 없습니다")
	case errors.Is(err, service.ErrImageNotFound):
		apperrors.NotFound(c, apperrors.ImageNotFound, "이미지를 찾을 수 없습니다")
	case errors.Is(err, service.ErrRestaurantAccessDenied):
		apperrors.Forbidden(c, "레스토랑에 대한 권한이 없습니다")
	case errors.Is(err, service.ErrInvalidCategory):
		apperrors.BadRequest(c, apperrors.RestaurantInvalidCategory, "유효하지 않은 카테고리입니다")
	case errors.Is(err, service.ErrEmptyMutation):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "수정할 필드가 없습니다")
	default:
		log.Error("Restaurant request failed", err, nil)
		info := apperrors.ParseError(err, fallback)
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}

// parseIDParam 경로 파라미터를 uint ID로 파싱
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 ID입니다")
		return 0, false
	}
	return uint(id), true
}
