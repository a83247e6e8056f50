package dto

import (
	"time"

	"github.com/google/uuid"
)

type ShoeGenderResponse struct {
	Gender      string   `json:"gender"`
	PriceRRP    *float64 `json:"price_rrp,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	WeightGrams *float64 `json:"weight_grams,omitempty"`
}

type ShoeReviewResponse struct {
	Fit        string `json:"fit,omitempty"`
	Feel       string `json:"feel,omitempty"`
	Durability string `json:"durability,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
}

type ShoeResponse struct {
	Id                    uuid.UUID            `json:"id"`
	Brand                 string               `json:"brand"`
	Model                 string               `json:"model"`
	Fit                   string               `json:"fit,omitempty"`
	WideOption            bool                 `json:"wide_option"`
	IntendedUse           string               `json:"intended_use,omitempty"`
	Description           string               `json:"description,omitempty"`
	ForefootStackHeightMm *float64             `json:"forefoot_stack_height_mm,omitempty"`
	HeelStackHeightMm     *float64             `json:"heel_stack_height_mm,omitempty"`
	DropMm                *float64             `json:"drop_mm,omitempty"`
	Genders               []ShoeGenderResponse `json:"genders,omitempty"`
	Reviews               []ShoeReviewResponse `json:"reviews,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             *time.Time           `json:"updated_at,omitempty"`
}

type SearchShoesRequest struct {
	Query string `json:"query" validate:"required"`
}

type SearchShoesResponse struct {
	Shoes []*ShoeResponse `json:"shoes"`
}
