package model

import (
	"time"
)

// RestaurantImage 업로드된 레스토랑 이미지
// 업로더 본인만 자신의 레스토랑에 연결할 수 있다
type RestaurantImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"uploaded_at"`

	URL    string `gorm:"type:text;not null" json:"url"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`
}

func (RestaurantImage) TableName() string {
	return "restaurant_images"
}
