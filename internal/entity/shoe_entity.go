package entity

import (
	"time"

	"github.com/google/uuid"
)

type Shoe struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Brand                 string
	Model                 string
	ForefootStackHeightMm *float64
	HeelStackHeightMm     *float64
	DropMm                *float64
	Fit                   string
	WideOption            bool
	IntendedUse           string
	Description           string
	Genders               []ShoeGender
	Reviews               []ShoeReview
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}

// Drop returns the heel-to-forefoot difference, preferring the stored column
// and falling back to the computed value when both stack heights are known.
func (s *Shoe) Drop() *float64 {
	if s.DropMm != nil {
		return s.DropMm
	}
	if s.HeelStackHeightMm != nil && s.ForefootStackHeightMm != nil {
		d := *s.HeelStackHeightMm - *s.ForefootStackHeightMm
		return &d
	}
	return nil
}

type ShoeGender struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShoeId      uuid.UUID `gorm:"type:uuid;index"`
	Gender      string
	PriceRRP    *float64
	Price       *float64
	WeightGrams *float64
	ImageId     *uuid.UUID
}

type ShoeReview struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShoeId     uuid.UUID `gorm:"type:uuid;index"`
	Fit        string
	Feel       string
	Durability string
	SourceURL  string
}
