package model

import (
	"time"

	"gorm.io/gorm"
)

// Review 레스토랑 리뷰 모델
// 활성 리뷰는 (restaurant_id, user_id) 당 1개만 허용되며
// 부분 유니크 인덱스로 강제된다 (internal/db/migrate.go 참고)
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Rating     int     `gorm:"not null" json:"rating"` // 1-5
	ReviewText *string `gorm:"type:text" json:"review_text,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
