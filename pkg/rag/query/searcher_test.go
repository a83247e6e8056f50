package query

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/internal/pkg/apperr"
	"wide-toebox-be/internal/pkg/logger"
	"wide-toebox-be/internal/repository/specification"
	"wide-toebox-be/pkg/llm"
)

// fakeRepo records the specifications it was queried with and returns a
// canned result.
type fakeRepo struct {
	shoes     []*entity.Shoe
	lastSpecs []specification.Specification
	calls     int
}

func (r *fakeRepo) Create(ctx context.Context, shoe *entity.Shoe) error { return nil }
func (r *fakeRepo) Update(ctx context.Context, shoe *entity.Shoe) error { return nil }
func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (r *fakeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.shoes)), nil
}
func (r *fakeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shoe, error) {
	if len(r.shoes) == 0 {
		return nil, nil
	}
	return r.shoes[0], nil
}
func (r *fakeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shoe, error) {
	r.calls++
	r.lastSpecs = specs
	return r.shoes, nil
}

// scriptedProvider returns a fixed response or error for any prompt.
type scriptedProvider struct {
	response string
	err      error
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func shoeWithDrop(brand string, drop *float64) *entity.Shoe {
	return &entity.Shoe{Id: uuid.New(), Brand: brand, DropMm: drop}
}

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewZapLogger(t.TempDir()+"/test.log", false)
}

func TestExecuteEmptyConditionsReturnsNoResults(t *testing.T) {
	repo := &fakeRepo{shoes: []*entity.Shoe{shoeWithDrop("Altra", fp(0))}}
	s := NewSearcher(repo, &scriptedProvider{}, testLogger(t))

	shoes, err := s.Execute(context.Background(), &ShoeSearchConditions{})
	require.NoError(t, err)

	assert.Empty(t, shoes)
	assert.Zero(t, repo.calls, "no filters means no query at all")
}

func TestExecuteSortOnlyConditionsAreNotAFilter(t *testing.T) {
	repo := &fakeRepo{shoes: []*entity.Shoe{shoeWithDrop("Altra", fp(0))}}
	s := NewSearcher(repo, &scriptedProvider{}, testLogger(t))

	shoes, err := s.Execute(context.Background(), &ShoeSearchConditions{
		StackHeightMm: RangeField{Spec: &RangeSpec{Sort: "desc"}},
	})
	require.NoError(t, err)

	assert.Empty(t, shoes)
	assert.Zero(t, repo.calls)
}

func TestExecuteBuildsFiltersAndLimit(t *testing.T) {
	repo := &fakeRepo{shoes: []*entity.Shoe{shoeWithDrop("Altra", fp(0))}}
	s := NewSearcher(repo, &scriptedProvider{}, testLogger(t))

	limit := 3
	shoes, err := s.Execute(context.Background(), &ShoeSearchConditions{
		Keywords:    []string{"altra", "lone"},
		Drop:        RangeField{Spec: &RangeSpec{Min: fp(0), Max: fp(0)}},
		Width:       "wide",
		IntendedUse: "trail",
		Gender:      "women",
		Limit:       &limit,
	})
	require.NoError(t, err)
	require.Len(t, shoes, 1)

	require.Equal(t, 1, repo.calls)
	// two keywords + drop + width + use + gender + limit
	require.Len(t, repo.lastSpecs, 7)
	assert.IsType(t, specification.ByKeyword{}, repo.lastSpecs[0])
	assert.IsType(t, specification.DropRange{}, repo.lastSpecs[2])
	assert.Equal(t, specification.Limit{N: 3}, repo.lastSpecs[6])
}

func TestExecuteStackHeightSortIsDelegated(t *testing.T) {
	repo := &fakeRepo{}
	s := NewSearcher(repo, &scriptedProvider{}, testLogger(t))

	_, err := s.Execute(context.Background(), &ShoeSearchConditions{
		StackHeightMm: RangeField{Spec: &RangeSpec{Max: fp(25), Sort: "asc"}},
	})
	require.NoError(t, err)

	require.Len(t, repo.lastSpecs, 3)
	assert.IsType(t, specification.StackHeightRange{}, repo.lastSpecs[0])
	assert.Equal(t, specification.OrderByStackHeight{Desc: false}, repo.lastSpecs[1])
	assert.Equal(t, specification.Limit{N: 5}, repo.lastSpecs[2])
}

func TestExecuteDropSortHappensInMemory(t *testing.T) {
	repo := &fakeRepo{shoes: []*entity.Shoe{
		shoeWithDrop("mid", fp(5)),
		shoeWithDrop("high", fp(10)),
		shoeWithDrop("zero", fp(0)),
		shoeWithDrop("unknown", nil),
	}}
	s := NewSearcher(repo, &scriptedProvider{}, testLogger(t))

	shoes, err := s.Execute(context.Background(), &ShoeSearchConditions{
		Drop: RangeField{Spec: &RangeSpec{Min: fp(0), Sort: "asc"}},
	})
	require.NoError(t, err)

	require.Len(t, shoes, 4)
	assert.Equal(t, "zero", shoes[0].Brand)
	assert.Equal(t, "mid", shoes[1].Brand)
	assert.Equal(t, "high", shoes[2].Brand)
	assert.Equal(t, "unknown", shoes[3].Brand, "shoes without a drop sink to the end")

	shoes, err = s.Execute(context.Background(), &ShoeSearchConditions{
		Drop: RangeField{Spec: &RangeSpec{Min: fp(0), Sort: "desc"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "high", shoes[0].Brand)
}

func TestSearchUsesTranslatedConditions(t *testing.T) {
	repo := &fakeRepo{shoes: []*entity.Shoe{shoeWithDrop("Altra", fp(0))}}
	provider := &scriptedProvider{
		response: `{"keywords":["altra"],"stackHeightMm":"empty","drop":{"min":0,"max":0},"width":"empty","intendedUse":"empty","gender":"empty"}`,
	}
	s := NewSearcher(repo, provider, testLogger(t))

	shoes, err := s.Search(context.Background(), "show me zero drop altras")
	require.NoError(t, err)

	assert.Len(t, shoes, 1)
	require.Equal(t, 1, repo.calls)
	assert.IsType(t, specification.ByKeyword{}, repo.lastSpecs[0])
	assert.IsType(t, specification.DropRange{}, repo.lastSpecs[1])
}

func TestSearchFallsBackOnTranslationFailure(t *testing.T) {
	repo := &fakeRepo{shoes: []*entity.Shoe{shoeWithDrop("Altra", fp(0))}}
	provider := &scriptedProvider{err: errors.New("model offline")}
	s := NewSearcher(repo, provider, testLogger(t))

	shoes, err := s.Search(context.Background(), "best zero drop shoes")
	require.NoError(t, err)

	assert.Len(t, shoes, 1)
	require.Equal(t, 1, repo.calls)
	require.Len(t, repo.lastSpecs, 2)
	anyKw, ok := repo.lastSpecs[0].(specification.AnyKeyword)
	require.True(t, ok)
	assert.Equal(t, []string{"best", "zero", "drop", "shoes"}, anyKw.Keywords)
	assert.Equal(t, specification.Limit{N: 5}, repo.lastSpecs[1])
}

func TestSearchFallbackWithNoUsableKeywords(t *testing.T) {
	repo := &fakeRepo{shoes: []*entity.Shoe{shoeWithDrop("Altra", fp(0))}}
	provider := &scriptedProvider{response: "this is not json"}
	s := NewSearcher(repo, provider, testLogger(t))

	shoes, err := s.Search(context.Background(), "how is it")
	require.NoError(t, err)

	assert.Empty(t, shoes)
	assert.Zero(t, repo.calls)
}

func TestTranslateWrapsFailures(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("boom")}
	_, err := Translate(context.Background(), provider, "anything")

	var trErr *apperr.TranslationError
	assert.True(t, errors.As(err, &trErr))
}

func TestTranslateStripsCodeFences(t *testing.T) {
	provider := &scriptedProvider{
		response: "```json\n{\"keywords\":[\"topo\"],\"stackHeightMm\":\"empty\",\"drop\":\"empty\",\"width\":\"empty\",\"intendedUse\":\"empty\",\"gender\":\"empty\"}\n```",
	}
	conditions, err := Translate(context.Background(), provider, "topo shoes")
	require.NoError(t, err)
	assert.Equal(t, []string{"topo"}, conditions.Keywords)
}
