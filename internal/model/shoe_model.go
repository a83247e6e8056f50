package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Shoe struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Brand                 string    `gorm:"type:varchar(255);not null;index"`
	Model                 string    `gorm:"type:varchar(255);not null;index"`
	ForefootStackHeightMm *float64
	HeelStackHeightMm     *float64
	DropMm                *float64
	Fit                   string `gorm:"type:varchar(64)"`
	WideOption            bool
	IntendedUse           string         `gorm:"type:varchar(255)"`
	Description           string         `gorm:"type:text"`
	RawSpecs              datatypes.JSON `gorm:"type:jsonb"` // scraper payload, kept verbatim
	Genders               []ShoeGender   `gorm:"foreignKey:ShoeId"`
	Reviews               []ShoeReview   `gorm:"foreignKey:ShoeId"`
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime"`
}

func (Shoe) TableName() string {
	return "shoes"
}

type ShoeGender struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShoeId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Gender      string    `gorm:"type:varchar(32);not null"`
	PriceRRP    *float64
	Price       *float64
	WeightGrams *float64
	ImageId     *uuid.UUID `gorm:"type:uuid"` // blob store reference, served by the image route
}

func (ShoeGender) TableName() string {
	return "shoe_genders"
}

type ShoeReview struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShoeId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Fit        string    `gorm:"type:text"`
	Feel       string    `gorm:"type:text"`
	Durability string    `gorm:"type:text"`
	SourceURL  string    `gorm:"type:varchar(2048)"`
}

func (ShoeReview) TableName() string {
	return "shoe_reviews"
}
