package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/nutrisnap/internal/domain"
)

const appleJSON = `{
	"foodName": "Medium Red Apple",
	"servingSize": "1 medium (182g)",
	"calories": 95,
	"protein": 0.5,
	"carbs": 25,
	"fat": 0.3,
	"fiber": 4.4,
	"sugar": 19,
	"cholesterol": 0,
	"sodium": 2,
	"healthTip": "Eat the skin, it holds most of the fiber."
}`

func ptr(v float64) *float64 { return &v }

func TestParseResult(t *testing.T) {
	result, err := ParseResult(appleJSON)
	require.NoError(t, err)

	assert.Equal(t, &domain.NutritionResult{
		FoodName:    "Medium Red Apple",
		ServingSize: "1 medium (182g)",
		Calories:    95,
		Protein:     0.5,
		Carbs:       25,
		Fat:         0.3,
		Fiber:       4.4,
		Sugar:       19,
		Cholesterol: ptr(0),
		Sodium:      ptr(2),
		HealthTip:   "Eat the skin, it holds most of the fiber.",
	}, result)
}

func TestParseResultOptionalFieldsMissing(t *testing.T) {
	raw := `{"foodName":"Water","servingSize":"1 cup","calories":0,"protein":0,"carbs":0,"fat":0,"fiber":0,"sugar":0,"healthTip":"Stay hydrated."}`

	result, err := ParseResult(raw)
	require.NoError(t, err)
	assert.Nil(t, result.Cholesterol)
	assert.Nil(t, result.Sodium)
	assert.Equal(t, "Water", result.FoodName)
}

func TestParseResultErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: "", wantErr: ErrEmptyResponse},
		{name: "whitespace only", raw: " \n\t ", wantErr: ErrEmptyResponse},
		{name: "plain text", raw: "An apple has about 95 calories.", wantErr: ErrMalformedResponse},
		{name: "truncated json", raw: `{"foodName": "Apple", "calories": 9`, wantErr: ErrMalformedResponse},
		{name: "json array", raw: `[1, 2, 3]`, wantErr: ErrMalformedResponse},
		{name: "json null", raw: `null`, wantErr: ErrMalformedResponse},
		{name: "number as string", raw: `{"foodName":"Apple","servingSize":"1","calories":"95","protein":0,"carbs":0,"fat":0,"fiber":0,"sugar":0,"healthTip":"x"}`, wantErr: ErrMalformedResponse},
		{name: "required field missing", raw: `{"foodName":"Apple","servingSize":"1","calories":95,"protein":0,"carbs":0,"fat":0,"sugar":0,"healthTip":"x"}`, wantErr: ErrMalformedResponse},
		{name: "required field null", raw: `{"foodName":null,"servingSize":"1","calories":95,"protein":0,"carbs":0,"fat":0,"fiber":0,"sugar":0,"healthTip":"x"}`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseResult(tt.raw)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
