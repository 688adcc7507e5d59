package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/nutrisnap/internal/domain"
)

func sample() *domain.NutritionResult {
	chol := 0.0
	return &domain.NutritionResult{
		FoodName:    "Grilled Chicken Caesar Salad",
		ServingSize: "1 bowl (350g)",
		Calories:    470,
		Protein:     38,
		Carbs:       14,
		Fat:         29,
		Fiber:       0,
		Sugar:       0,
		Cholesterol: &chol,
		HealthTip:   "Ask for dressing on the side.",
	}
}

func TestTiles(t *testing.T) {
	tiles := Tiles(sample())

	assert.Equal(t, []Tile{
		{Label: "Calories", Value: 470, Unit: "kcal", Category: CategoryCalories},
		{Label: "Protein", Value: 38, Unit: "g", Category: CategoryProtein},
		{Label: "Carbs", Value: 14, Unit: "g", Category: CategoryCarbs},
		{Label: "Fat", Value: 29, Unit: "g", Category: CategoryFat},
	}, tiles)
}

func TestRowsNestFiberAndSugarUnderCarbs(t *testing.T) {
	rows := Rows(sample())

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	require.Equal(t, []string{
		"Calories", "Total Fat", "Total Carbohydrates", "Dietary Fiber", "Sugars", "Protein", "Cholesterol", "Sodium",
	}, labels)

	carbs, fiber, sugar := rows[2], rows[3], rows[4]
	assert.True(t, carbs.Primary)
	assert.False(t, carbs.Nested)
	assert.Equal(t, CategoryCarbs, carbs.Category)

	for _, r := range []Row{fiber, sugar} {
		assert.True(t, r.Nested, r.Label)
		assert.False(t, r.Primary, r.Label)
		require.NotNil(t, r.Value, r.Label)
		assert.Zero(t, *r.Value, r.Label)
	}
}

func TestRowsOptionalValues(t *testing.T) {
	rows := Rows(sample())

	cholesterol, sodium := rows[6], rows[7]
	require.NotNil(t, cholesterol.Value)
	assert.Zero(t, *cholesterol.Value)
	assert.True(t, cholesterol.DividerBefore)
	assert.Nil(t, sodium.Value)
	assert.Equal(t, Missing, FormatOptional(sodium.Value))
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		0:      "0",
		95:     "95",
		0.5:    "0.5",
		4.44:   "4.4",
		19.96:  "20",
		1350.0: "1350",
		-0.01:  "0",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%v)", in)
	}
}

func TestNewBreakdown(t *testing.T) {
	assert.Nil(t, NewBreakdown(nil))

	b := NewBreakdown(sample())
	require.NotNil(t, b)
	assert.Len(t, b.Tiles, 4)
	assert.Len(t, b.Rows, 8)
	assert.Len(t, b.Chart.Segments, 3)
	assert.Equal(t, "Grilled Chicken Caesar Salad", b.Result.FoodName)
}
