package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bestfoody-backend/internal/app/service"
	apperrors "github.com/ikkim/bestfoody-backend/internal/errors"
	"github.com/ikkim/bestfoody-backend/internal/middleware"
)

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	Rating     int     `json:"rating" binding:"required,min=1,max=5"`
	ReviewText *string `json:"review_text"`
}

type UpdateReviewRequest struct {
	Rating     *int    `json:"rating"`
	ReviewText *string `json:"review_text"`
}

// CreateReview 리뷰 작성
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
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

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, restaurantID, req.Rating, req.ReviewText)
	if err != nil {
		ctrl.respondError(c, err, "리뷰 작성에 실패했습니다")
		return
	}

	log.Info("Review created", map[string]interface{}{
		"review_id":     review.ID,
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// GetRestaurantReviews 레스토랑 리뷰 목록 조회 (최신순)
func (ctrl *ReviewController) GetRestaurantReviews(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := ctrl.reviewService.GetRestaurantReviews(restaurantID)
	if err != nil {
		ctrl.respondError(c, err, "리뷰 목록 조회에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// UpdateReview 리뷰 수정 (작성자만)
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
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
	reviewID, ok := parseIDParam(c, "reviewId")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	review, err := ctrl.reviewService.UpdateReview(userID, restaurantID, reviewID, service.ReviewMutation{
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		ctrl.respondError(c, err, "리뷰 수정에 실패했습니다")
		return
	}

	log.Info("Review updated", map[string]interface{}{
		"review_id": reviewID,
		"user_id":   userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"review":  review,
	})
}

// DeleteReview 리뷰 삭제 (작성자만, soft delete)
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
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
	reviewID, ok := parseIDParam(c, "reviewId")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteReview(userID, restaurantID, reviewID); err != nil {
		ctrl.respondError(c, err, "리뷰 삭제에 실패했습니다")
		return
	}

	log.Info("Review deleted", map[string]interface{}{
		"review_id": reviewID,
		"user_id":   userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
		"id":      reviewID,
	})
}

// respondError 서비스 에러를 HTTP 상태 코드로 변환
func (ctrl *ReviewController) respondError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		apperrors.NotFound(c, apperrors.RestaurantNotFound, "레스토랑을 찾을 수 없습니다")
	case errors.Is(err, service.ErrReviewNotFound):
		apperrors.NotFound(c, apperrors.ReviewNotFound, "리뷰를 찾을 수 없습니다")
	case errors.Is(err, service.ErrAlreadyReviewed):
		apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "이미 이 레스토랑에 리뷰를 작성하셨습니다")
	case errors.Is(err, service.ErrReviewAccessDenied):
		apperrors.Forbidden(c, "리뷰에 대한 권한이 없습니다")
	case errors.Is(err, service.ErrInvalidRating):
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "평점은 1~5 사이여야 합니다")
	case errors.Is(err, service.ErrEmptyMutation):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "수정할 필드가 없습니다")
	default:
		log.Error("Review request failed", err, nil)
		info := apperrors.ParseError(err, fallback)
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}
