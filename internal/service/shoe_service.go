package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wide-toebox-be/internal/dto"
	"wide-toebox-be/internal/entity"
	"wide-toebox-be/internal/repository/contract"
	"wide-toebox-be/internal/repository/specification"
	"wide-toebox-be/pkg/rag/query"
)

type IShoeService interface {
	GetAll(ctx context.Context) ([]*dto.ShoeResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShoeResponse, error)
	Search(ctx context.Context, req *dto.SearchShoesRequest) (*dto.SearchShoesResponse, error)
}

type shoeService struct {
	repo     contract.ShoeRepository
	searcher *query.Searcher
}

func NewShoeService(repo contract.ShoeRepository, searcher *query.Searcher) IShoeService {
	return &shoeService{
		repo:     repo,
		searcher: searcher,
	}
}

func (s *shoeService) GetAll(ctx context.Context) ([]*dto.ShoeResponse, error) {
	shoes, err := s.repo.FindAll(ctx, specification.OrderBy{Field: "brand"})
	if err != nil {
		return nil, err
	}
	return ToShoeResponses(shoes), nil
}

func (s *shoeService) Show(ctx context.Context, id uuid.UUID) (*dto.ShoeResponse, error) {
	shoe, err := s.repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if shoe == nil {
		return nil, fmt.Errorf("shoe %s not found", id)
	}
	return ToShoeResponse(shoe), nil
}

func (s *shoeService) Search(ctx context.Context, req *dto.SearchShoesRequest) (*dto.SearchShoesResponse, error) {
	shoes, err := s.searcher.Search(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	return &dto.SearchShoesResponse{Shoes: ToShoeResponses(shoes)}, nil
}

func ToShoeResponse(shoe *entity.Shoe) *dto.ShoeResponse {
	res := &dto.ShoeResponse{
		Id:                    shoe.Id,
		Brand:                 shoe.Brand,
		Model:                 shoe.Model,
		Fit:                   shoe.Fit,
		WideOption:            shoe.WideOption,
		IntendedUse:           shoe.IntendedUse,
		Description:           shoe.Description,
		ForefootStackHeightMm: shoe.ForefootStackHeightMm,
		HeelStackHeightMm:     shoe.HeelStackHeightMm,
		DropMm:                shoe.Drop(),
		CreatedAt:             shoe.CreatedAt,
		UpdatedAt:             shoe.UpdatedAt,
	}
	for _, g := range shoe.Genders {
		res.Genders = append(res.Genders, dto.ShoeGenderResponse{
			Gender:      g.Gender,
			PriceRRP:    g.PriceRRP,
			Price:       g.Price,
			WeightGrams: g.WeightGrams,
		})
	}
	for _, r := range shoe.Reviews {
		res.Reviews = append(res.Reviews, dto.ShoeReviewResponse{
			Fit:        r.Fit,
			Feel:       r.Feel,
			Durability: r.Durability,
			SourceURL:  r.SourceURL,
		})
	}
	return res
}

func ToShoeResponses(shoes []*entity.Shoe) []*dto.ShoeResponse {
	result := make([]*dto.ShoeResponse, 0, len(shoes))
	for _, shoe := range shoes {
		result = append(result, ToShoeResponse(shoe))
	}
	return result
}
