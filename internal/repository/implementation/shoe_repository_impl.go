package implementation

import (
	"context"
	"errors"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/internal/mapper"
	"wide-toebox-be/internal/model"
	"wide-toebox-be/internal/repository/contract"
	"wide-toebox-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShoeMapper
}

func NewShoeRepository(db *gorm.DB) contract.ShoeRepository {
	return &ShoeRepositoryImpl{
		db:     db,
		mapper: mapper.NewShoeMapper(),
	}
}

func (r *ShoeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ShoeRepositoryImpl) Create(ctx context.Context, shoe *entity.Shoe) error {
	m := r.mapper.ToModel(shoe)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*shoe = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShoeRepositoryImpl) Update(ctx context.Context, shoe *entity.Shoe) error {
	m := r.mapper.ToModel(shoe)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*shoe = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShoeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Shoe{}, id).Error
}

func (r *ShoeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shoe, error) {
	var m model.Shoe
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Shoe{}), specs...)
	if err := query.Preload("Genders").Preload("Reviews").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShoeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shoe, error) {
	var models []*model.Shoe
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Shoe{}), specs...)
	if err := query.Preload("Genders").Preload("Reviews").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ShoeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Shoe{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
