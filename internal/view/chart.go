package view

import (
	"fmt"

	"github.com/vbonduro/nutrisnap/internal/domain"
)

// EmptyChartText is shown instead of a chart when no macro has a value.
const EmptyChartText = "No macronutrient data available"

// circumference of the SVG donut ring; a radius of 100/2π makes one unit of
// stroke length one percent of the ring.
const circumference = 100.0

// Macros are the chart inputs, in grams.
type Macros struct {
	Fat     float64
	Carbs   float64
	Protein float64
}

func MacrosOf(r *domain.NutritionResult) Macros {
	return Macros{Fat: r.Fat, Carbs: r.Carbs, Protein: r.Protein}
}

// Segment is one slice of the macro donut.
type Segment struct {
	Name    string
	Value   float64
	Color   string
	Percent float64
	// DashArray and DashOffset place the slice on an SVG circle whose
	// circumference is 100, starting at twelve o'clock.
	DashArray  string
	DashOffset string
}

type ChartData struct {
	Segments []Segment
	Empty    bool
}

// Chart builds the macro proportion chart. Entries that are zero (or
// negative) are dropped so the ring never shows empty slices; when nothing
// remains the chart is Empty.
func Chart(m Macros) ChartData {
	entries := []struct {
		name  string
		value float64
		color string
	}{
		{"Fat", m.Fat, "#F87171"},
		{"Carbs", m.Carbs, "#60A5FA"},
		{"Protein", m.Protein, "#34D399"},
	}

	var total float64
	for _, e := range entries {
		if e.value > 0 {
			total += e.value
		}
	}
	if total == 0 {
		return ChartData{Empty: true}
	}

	var segments []Segment
	offset := 0.0
	for _, e := range entries {
		if e.value <= 0 {
			continue
		}
		pct := e.value / total * 100
		segments = append(segments, Segment{
			Name:       e.name,
			Value:      e.value,
			Color:      e.color,
			Percent:    pct,
			DashArray:  fmt.Sprintf("%.2f %.2f", pct, circumference-pct),
			DashOffset: fmt.Sprintf("%.2f", 25-offset),
		})
		offset += pct
	}
	return ChartData{Segments: segments}
}
