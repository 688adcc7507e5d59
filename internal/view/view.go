// Package view turns a NutritionResult into the plain data the templates
// render: summary tiles, the detailed nutrient list and the macro chart.
// Every function here is pure; nothing is cached between calls.
package view

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vbonduro/nutrisnap/internal/domain"
)

// Category tags a figure with the macro it belongs to; templates map it to
// a color.
type Category string

const (
	CategoryCalories Category = "calories"
	CategoryProtein  Category = "protein"
	CategoryCarbs    Category = "carbs"
	CategoryFat      Category = "fat"
)

// Missing is rendered in place of a value the model did not provide.
const Missing = "—"

var titleCase = cases.Title(language.English)

// Tile is one summary figure.
type Tile struct {
	Label    string
	Value    float64
	Unit     string
	Category Category
}

func newTile(category Category, value float64, unit string) Tile {
	return Tile{
		Label:    titleCase.String(string(category)),
		Value:    value,
		Unit:     unit,
		Category: category,
	}
}

// Tiles returns the four summary tiles: calories, protein, carbs and fat.
func Tiles(r *domain.NutritionResult) []Tile {
	return []Tile{
		newTile(CategoryCalories, r.Calories, "kcal"),
		newTile(CategoryProtein, r.Protein, "g"),
		newTile(CategoryCarbs, r.Carbs, "g"),
		newTile(CategoryFat, r.Fat, "g"),
	}
}

// Row is one line of the detailed nutrient list. Nested rows sit under the
// preceding non-nested row. DividerBefore starts a new group.
type Row struct {
	Label         string
	Value         *float64
	Unit          string
	Primary       bool
	Nested        bool
	DividerBefore bool
	Category      Category
}

// Rows returns the detailed list. Fiber and sugar are always present and
// nested under total carbohydrates, whatever their values.
func Rows(r *domain.NutritionResult) []Row {
	return []Row{
		{Label: "Calories", Value: value(r.Calories), Unit: "kcal", Primary: true},
		{Label: "Total Fat", Value: value(r.Fat), Unit: "g", Primary: true, DividerBefore: true, Category: CategoryFat},
		{Label: "Total Carbohydrates", Value: value(r.Carbs), Unit: "g", Primary: true, Category: CategoryCarbs},
		{Label: "Dietary Fiber", Value: value(r.Fiber), Unit: "g", Nested: true},
		{Label: "Sugars", Value: value(r.Sugar), Unit: "g", Nested: true},
		{Label: "Protein", Value: value(r.Protein), Unit: "g", Primary: true, Category: CategoryProtein},
		{Label: "Cholesterol", Value: r.Cholesterol, Unit: "mg", DividerBefore: true},
		{Label: "Sodium", Value: r.Sodium, Unit: "mg"},
	}
}

func value(v float64) *float64 { return &v }

// FormatNumber renders v with at most one decimal place and no trailing zero.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		s = s[:len(s)-2]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatOptional renders v, or Missing when v is nil.
func FormatOptional(v *float64) string {
	if v == nil {
		return Missing
	}
	return FormatNumber(*v)
}

// Breakdown bundles everything the result section renders.
type Breakdown struct {
	Result *domain.NutritionResult
	Tiles  []Tile
	Rows   []Row
	Chart  ChartData
}

// NewBreakdown returns nil for a nil result.
func NewBreakdown(r *domain.NutritionResult) *Breakdown {
	if r == nil {
		return nil
	}
	return &Breakdown{
		Result: r,
		Tiles:  Tiles(r),
		Rows:   Rows(r),
		Chart:  Chart(MacrosOf(r)),
	}
}
