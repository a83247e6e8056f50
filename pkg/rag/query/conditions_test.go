package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestShoeSearchConditionsUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, c *ShoeSearchConditions)
	}{
		{
			name:  "empty sentinels decode to unset fields",
			input: `{"keywords":["altra"],"stackHeightMm":"empty","drop":"empty","width":"empty","intendedUse":"empty","gender":"empty"}`,
			check: func(t *testing.T, c *ShoeSearchConditions) {
				assert.Equal(t, []string{"altra"}, c.Keywords)
				assert.Nil(t, c.StackHeightMm.Spec)
				assert.Nil(t, c.Drop.Spec)
				assert.Empty(t, c.Width.Value())
				assert.Empty(t, c.IntendedUse.Value())
				assert.Empty(t, c.Gender.Value())
			},
		},
		{
			name:  "zero drop query",
			input: `{"drop":{"min":0,"max":0},"stackHeightMm":"empty","width":"empty","intendedUse":"empty","gender":"empty"}`,
			check: func(t *testing.T, c *ShoeSearchConditions) {
				require.NotNil(t, c.Drop.Spec)
				assert.Equal(t, fp(0), c.Drop.Spec.Min)
				assert.Equal(t, fp(0), c.Drop.Spec.Max)
				assert.True(t, c.Drop.Spec.hasBounds())
			},
		},
		{
			name:  "sort only range has no bounds",
			input: `{"stackHeightMm":{"sort":"desc"},"drop":"empty","width":"empty","intendedUse":"empty","gender":"empty"}`,
			check: func(t *testing.T, c *ShoeSearchConditions) {
				require.NotNil(t, c.StackHeightMm.Spec)
				assert.Equal(t, "desc", c.StackHeightMm.Spec.Sort)
				assert.False(t, c.StackHeightMm.Spec.hasBounds())
			},
		},
		{
			name:  "null and missing behave like empty",
			input: `{"stackHeightMm":null}`,
			check: func(t *testing.T, c *ShoeSearchConditions) {
				assert.Nil(t, c.StackHeightMm.Spec)
				assert.Nil(t, c.Drop.Spec)
			},
		},
		{
			name:  "string values pass through",
			input: `{"stackHeightMm":"empty","drop":"empty","width":"wide","intendedUse":"trail","gender":"women","limit":3}`,
			check: func(t *testing.T, c *ShoeSearchConditions) {
				assert.Equal(t, "wide", c.Width.Value())
				assert.Equal(t, "trail", c.IntendedUse.Value())
				assert.Equal(t, "women", c.Gender.Value())
				assert.Equal(t, ip(3), c.Limit)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c ShoeSearchConditions
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			tt.check(t, &c)
		})
	}
}

func TestRangeFieldMarshalRoundTrip(t *testing.T) {
	c := ShoeSearchConditions{
		StackHeightMm: RangeField{Spec: &RangeSpec{Max: fp(20), Sort: "asc"}},
	}
	encoded, err := json.Marshal(&c)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"drop":"empty"`)
	assert.Contains(t, string(encoded), `"max":20`)
}

func TestEffectiveLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{name: "unset uses the default", limit: nil, want: 5},
		{name: "lower request honored", limit: ip(3), want: 3},
		{name: "higher request capped", limit: ip(50), want: 5},
		{name: "zero treated as unset", limit: ip(0), want: 5},
		{name: "negative treated as unset", limit: ip(-2), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ShoeSearchConditions{Limit: tt.limit}
			assert.Equal(t, tt.want, c.EffectiveLimit())
		})
	}
}

func TestFallbackKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "drops stopwords and short words",
			query: "What are the best zero drop shoes with wide toebox",
			want:  []string{"best", "zero", "drop", "shoes", "wide", "toebox"},
		},
		{
			name:  "lowercases",
			query: "ALTRA Lone Peak",
			want:  []string{"altra", "lone", "peak"},
		},
		{
			name:  "nothing usable",
			query: "how is it",
			want:  nil,
		},
		{
			name:  "empty input",
			query: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackKeywords(tt.query))
		})
	}
}
