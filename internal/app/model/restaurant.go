package model

import (
	"time"

	"gorm.io/gorm"
)

type RestaurantCategory string

const (
	CategoryMalaysian RestaurantCategory = "MALAYSIAN"
	CategoryIndian    RestaurantCategory = "INDIAN"
	CategoryChinese   RestaurantCategory = "CHINESE"
	CategoryJapanese  RestaurantCategory = "JAPANESE"
	CategoryItalian   RestaurantCategory = "ITALIAN"
)

// Valid 정의된 카테고리인지 확인
func (c RestaurantCategory) Valid() bool {
	switch c {
	case CategoryMalaysian, CategoryIndian, CategoryChinese, CategoryJapanese, CategoryItalian:
		return true
	}
	return false
}

// Restaurant 레스토랑 모델
type Restaurant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string             `gorm:"not null;index" json:"name"`
	Category RestaurantCategory `gorm:"type:varchar(20);not null;index" json:"category"`

	// 소유자 (등록자, 변경 불가)
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// 대표 이미지 (nullable)
	ImageID *uint            `gorm:"index" json:"image_id,omitempty"`
	Image   *RestaurantImage `gorm:"foreignKey:ImageID" json:"image,omitempty"`

	// 평점 집계 (리뷰 변경 시마다 재계산)
	Rating *RestaurantRating `gorm:"foreignKey:RestaurantID" json:"rating,omitempty"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
