package mapper

import (
	"wide-toebox-be/internal/entity"
	"wide-toebox-be/internal/model"
)

type ShoeMapper struct{}

func NewShoeMapper() *ShoeMapper {
	return &ShoeMapper{}
}

func (m *ShoeMapper) ToEntity(s *model.Shoe) *entity.Shoe {
	if s == nil {
		return nil
	}
	genders := make([]entity.ShoeGender, len(s.Genders))
	for i, g := range s.Genders {
		genders[i] = entity.ShoeGender{
			Id:          g.Id,
			ShoeId:      g.ShoeId,
			Gender:      g.Gender,
			PriceRRP:    g.PriceRRP,
			Price:       g.Price,
			WeightGrams: g.WeightGrams,
			ImageId:     g.ImageId,
		}
	}
	reviews := make([]entity.ShoeReview, len(s.Reviews))
	for i, r := range s.Reviews {
		reviews[i] = entity.ShoeReview{
			Id:         r.Id,
			ShoeId:     r.ShoeId,
			Fit:        r.Fit,
			Feel:       r.Feel,
			Durability: r.Durability,
			SourceURL:  r.SourceURL,
		}
	}
	updatedAt := s.UpdatedAt
	return &entity.Shoe{
		Id:                    s.Id,
		Brand:                 s.Brand,
		Model:                 s.Model,
		ForefootStackHeightMm: s.ForefootStackHeightMm,
		HeelStackHeightMm:     s.HeelStackHeightMm,
		DropMm:                s.DropMm,
		Fit:                   s.Fit,
		WideOption:            s.WideOption,
		IntendedUse:           s.IntendedUse,
		Description:           s.Description,
		Genders:               genders,
		Reviews:               reviews,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             &updatedAt,
	}
}

func (m *ShoeMapper) ToModel(s *entity.Shoe) *model.Shoe {
	if s == nil {
		return nil
	}
	genders := make([]model.ShoeGender, len(s.Genders))
	for i, g := range s.Genders {
		genders[i] = model.ShoeGender{
			Id:          g.Id,
			ShoeId:      g.ShoeId,
			Gender:      g.Gender,
			PriceRRP:    g.PriceRRP,
			Price:       g.Price,
			WeightGrams: g.WeightGrams,
			ImageId:     g.ImageId,
		}
	}
	reviews := make([]model.ShoeReview, len(s.Reviews))
	for i, r := range s.Reviews {
		reviews[i] = model.ShoeReview{
			Id:         r.Id,
			ShoeId:     r.ShoeId,
			Fit:        r.Fit,
			Feel:       r.Feel,
			Durability: r.Durability,
			SourceURL:  r.SourceURL,
		}
	}
	return &model.Shoe{
		Id:                    s.Id,
		Brand:                 s.Brand,
		Model:                 s.Model,
		ForefootStackHeightMm: s.ForefootStackHeightMm,
		HeelStackHeightMm:     s.HeelStackHeightMm,
		DropMm:                s.DropMm,
		Fit:                   s.Fit,
		WideOption:            s.WideOption,
		IntendedUse:           s.IntendedUse,
		Description:           s.Description,
		Genders:               genders,
		Reviews:               reviews,
		CreatedAt:             s.CreatedAt,
	}
}

func (m *ShoeMapper) ToEntities(models []*model.Shoe) []*entity.Shoe {
	entities := make([]*entity.Shoe, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
