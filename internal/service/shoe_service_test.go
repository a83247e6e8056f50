package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wide-toebox-be/internal/entity"
)

func fp(v float64) *float64 { return &v }

func TestToShoeResponse(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	shoe := &entity.Shoe{
		Id:                    id,
		Brand:                 "Topo Athletic",
		Model:                 "Phantom 3",
		ForefootStackHeightMm: fp(28),
		HeelStackHeightMm:     fp(33),
		Fit:                   "wide",
		WideOption:            false,
		IntendedUse:           "road",
		CreatedAt:             now,
		Genders: []entity.ShoeGender{
			{Gender: "men", PriceRRP: fp(150), WeightGrams: fp(292)},
		},
		Reviews: []entity.ShoeReview{
			{Feel: "Plush but stable.", SourceURL: "https://example.com/r"},
		},
	}

	res := ToShoeResponse(shoe)

	assert.Equal(t, id, res.Id)
	assert.Equal(t, "Topo Athletic", res.Brand)
	require.NotNil(t, res.DropMm)
	assert.InDelta(t, 5, *res.DropMm, 1e-9, "drop is computed when the column is null")
	require.Len(t, res.Genders, 1)
	assert.Equal(t, "men", res.Genders[0].Gender)
	require.Len(t, res.Reviews, 1)
	assert.Equal(t, "https://example.com/r", res.Reviews[0].SourceURL)
}

func TestToShoeResponsesPreservesOrder(t *testing.T) {
	shoes := []*entity.Shoe{
		{Brand: "Altra", DropMm: fp(0)},
		{Brand: "Topo"},
	}
	res := ToShoeResponses(shoes)

	require.Len(t, res, 2)
	assert.Equal(t, "Altra", res[0].Brand)
	require.NotNil(t, res[0].DropMm)
	assert.Zero(t, *res[0].DropMm)
	assert.Nil(t, res[1].DropMm, "no stack heights, no derivable drop")
}
