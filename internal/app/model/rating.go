package model

import (
	"time"
)

// RestaurantRating 레스토랑별 평점 집계
// average_rating은 활성 리뷰 평점의 산술 평균을 소수점 첫째 자리로 반올림한 값.
// 리뷰가 없으면 0/0. 집계 행은 삭제되지 않고 항상 upsert로 갱신된다.
type RestaurantRating struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RestaurantID  uint      `gorm:"uniqueIndex;not null" json:"restaurant_id"`
	AverageRating float64   `gorm:"not null;default:0" json:"average_rating"`
	ReviewCount   int       `gorm:"not null;default:0" json:"review_count"`
	LastUpdated   time.Time `json:"last_updated"`
}

func (RestaurantRating) TableName() string {
	return "restaurant_ratings"
}
