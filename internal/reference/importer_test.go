package reference

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/infrastructure/usda"
)

// fakeUSDAClient answers searches from a fixed map
type fakeUSDAClient struct {
	results map[string][]domain.USDAFood
	queries []string
}

func (f *fakeUSDAClient) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	f.queries = append(f.queries, query)
	foods, ok := f.results[query]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &domain.USDASearchResponse{Foods: foods, TotalHits: len(foods)}, nil
}

func nutrients(kcal, protein, carbs, fat, water float64) []domain.USDANutrient {
	return []domain.USDANutrient{
		{NutrientID: usda.NutrientIDEnergy, Value: kcal},
		{NutrientID: usda.NutrientIDProtein, Value: protein},
		{NutrientID: usda.NutrientIDCarbohydrate, Value: carbs},
		{NutrientID: usda.NutrientIDTotalFat, Value: fat},
		{NutrientID: usda.NutrientIDWater, Value: water},
	}
}

func TestParseFoodQuery(t *testing.T) {
	q, err := ParseFoodQuery(" Mela = apples raw with skin ")
	require.NoError(t, err)
	assert.Equal(t, FoodQuery{Key: "mela", Query: "apples raw with skin"}, q)

	for _, bad := range []string{"mela", "=apples", "mela=", ""} {
		_, err := ParseFoodQuery(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "arg %q", bad)
	}
}

func TestImporter_Import(t *testing.T) {
	client := &fakeUSDAClient{results: map[string][]domain.USDAFood{
		"apples raw": {
			{FdcID: 1, Description: "Apples, dried"},
			{FdcID: 2, Description: "Apples, raw", Nutrients: nutrients(52, 0.3, 14, 0.2, 85.6)},
		},
		"kiwi": {
			{FdcID: 3, Description: "Kiwifruit, green", Nutrients: nutrients(61, 1.1, 15, 0.5, 83)},
		},
		"no energy": {
			{FdcID: 4, Description: "Salt"},
		},
	}}

	tables, err := NewImporter(client).Import(context.Background(), []FoodQuery{
		{Key: "mela", Query: "apples raw"},
		{Key: "kiwi", Query: "kiwi"},
		{Key: "sale", Query: "no energy"},
		{Key: "ghost", Query: "missing"},
		{Key: "mela", Query: "apples raw"},
	})

	require.NotNil(t, tables)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	require.Len(t, tables.Foods, 2)
	assert.Equal(t, domain.ReferenceFood{
		Key: "mela", Name: "Apples, raw", Calories: 52, Carbs: 14, Proteins: 0.3, Fats: 0.2, Water: 85.6,
	}, tables.Foods[0])
	assert.Equal(t, "kiwi", tables.Foods[1].Key)

	assert.Equal(t, map[string]float64{"mela": 182}, tables.Portions)
	assert.Equal(t, Default().Activities, tables.Activities)
	assert.Equal(t, DefaultMessages(), tables.Messages)
	assert.Equal(t, []string{"apples raw", "kiwi", "no energy", "missing"}, client.queries)
}

func TestImporter_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &cancelledClient{}
	tables, err := NewImporter(client).Import(ctx, []FoodQuery{{Key: "mela", Query: "apples"}})

	assert.Nil(t, tables)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestImporter_FailsWhenNothingImported(t *testing.T) {
	client := &fakeUSDAClient{results: map[string][]domain.USDAFood{
		"no energy": {{FdcID: 4, Description: "Salt"}},
	}}

	tables, err := NewImporter(client).Import(context.Background(), []FoodQuery{
		{Key: "sale", Query: "no energy"},
		{Key: "ghost", Query: "missing"},
	})

	assert.Nil(t, tables)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

type cancelledClient struct{}

func (cancelledClient) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	return nil, ctx.Err()
}

func TestWriteYAML_RoundTripsThroughLoad(t *testing.T) {
	tables := Default()

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, tables))

	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, tables.Foods, loaded.Foods)
	assert.Equal(t, tables.Portions, loaded.Portions)
	assert.Equal(t, tables.Activities, loaded.Activities)
	assert.Equal(t, tables.Messages, loaded.Messages)
}
