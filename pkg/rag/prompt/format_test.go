package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/pkg/vectorstore"
)

func fp(v float64) *float64 { return &v }

func TestFormatShoeDataEmpty(t *testing.T) {
	assert.Equal(t, "No relevant shoes found in the database.", FormatShoeData(nil))
}

func TestFormatShoeData(t *testing.T) {
	shoes := []*entity.Shoe{{
		Brand:                 "Altra",
		Model:                 "Lone Peak 8",
		ForefootStackHeightMm: fp(25),
		HeelStackHeightMm:     fp(25),
		Fit:                   "wide",
		WideOption:            true,
		IntendedUse:           "trail",
		Genders: []entity.ShoeGender{
			{Gender: "men", PriceRRP: fp(140), WeightGrams: fp(315)},
		},
		Reviews: []entity.ShoeReview{
			{Fit: "Roomy toe box.", Durability: "Holds up well."},
		},
	}}

	out := FormatShoeData(shoes)

	assert.Contains(t, out, "## Altra Lone Peak 8")
	assert.Contains(t, out, "- Forefoot Stack Height: 25mm")
	assert.Contains(t, out, "- Drop: 0mm", "drop is derived from the stack heights")
	assert.Contains(t, out, "- Wide Option: Yes")
	assert.Contains(t, out, "### Gender Specific information")
	assert.Contains(t, out, "- men version, RRP: $140, Weight: 315g")
	assert.Contains(t, out, "### Reviews")
	assert.Contains(t, out, "- Durability: Holds up well.")
	assert.NotContains(t, out, "- Feel:", "empty review fields are omitted")
}

func TestFormatDocs(t *testing.T) {
	assert.Equal(t, "No documents retrieved.", FormatDocs(nil))

	docs := []vectorstore.ScoredDocument{{
		Document: vectorstore.Document{
			PageContent: "The Lone Peak fits wide feet well.",
			Metadata:    vectorstore.Metadata{Source: "https://example.com/review"},
		},
		Score: 0.91,
	}}
	out := FormatDocs(docs)

	assert.Contains(t, out, `<document source="https://example.com/review">`)
	assert.Contains(t, out, "The Lone Peak fits wide feet well.")
	assert.Contains(t, out, "</document>")
}
