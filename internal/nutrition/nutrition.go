package nutrition

import (
	"context"
	"fmt"

	"github.com/vbonduro/nutrisnap/internal/domain"
)

// Analyzer turns a free-text food description into a NutritionResult by
// asking an external generative model. Implementations make exactly one
// model call per Analyze and never retry.
type Analyzer interface {
	Analyze(ctx context.Context, query string) (*domain.NutritionResult, error)
}

// BuildPrompt returns the instruction sent to every backend for query.
func BuildPrompt(query string) string {
	return fmt.Sprintf(`Analyze the nutritional content of the following food: %q.
Pick a realistic serving size and base every value on that serving.
If the description is vague (for example "apple"), assume one standard, medium-sized whole item.
If the description is a meal with several components (for example "burger and fries"), estimate the combined total for all of them.

Provide values for:
- Calories (kcal)
- Protein (g)
- Total Carbohydrates (g)
- Total Fat (g)
- Fiber (g)
- Sugar (g)
- Cholesterol (mg)
- Sodium (mg)

Also give one short sentence with a health tip or fun fact about this food.`, query)
}
