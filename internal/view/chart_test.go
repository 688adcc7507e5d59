package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartAllZeroIsEmpty(t *testing.T) {
	c := Chart(Macros{})

	assert.True(t, c.Empty)
	assert.Empty(t, c.Segments)
}

func TestChartDropsZeroEntries(t *testing.T) {
	c := Chart(Macros{Fat: 10, Carbs: 0, Protein: 5})

	require.False(t, c.Empty)
	require.Len(t, c.Segments, 2)
	assert.Equal(t, "Fat", c.Segments[0].Name)
	assert.Equal(t, "Protein", c.Segments[1].Name)
	assert.InDelta(t, 66.67, c.Segments[0].Percent, 0.01)
	assert.InDelta(t, 33.33, c.Segments[1].Percent, 0.01)
}

func TestChartNegativeValuesAreDropped(t *testing.T) {
	c := Chart(Macros{Fat: -3, Carbs: 0, Protein: 0})
	assert.True(t, c.Empty)
}

func TestChartGeometry(t *testing.T) {
	c := Chart(Macros{Fat: 25, Carbs: 50, Protein: 25})

	require.Len(t, c.Segments, 3)
	assert.Equal(t, []Segment{
		{Name: "Fat", Value: 25, Color: "#F87171", Percent: 25, DashArray: "25.00 75.00", DashOffset: "25.00"},
		{Name: "Carbs", Value: 50, Color: "#60A5FA", Percent: 50, DashArray: "50.00 50.00", DashOffset: "0.00"},
		{Name: "Protein", Value: 25, Color: "#34D399", Percent: 25, DashArray: "25.00 75.00", DashOffset: "-50.00"},
	}, c.Segments)
}

func TestChartSingleEntryFillsRing(t *testing.T) {
	c := Chart(Macros{Carbs: 12})

	require.Len(t, c.Segments, 1)
	assert.Equal(t, 100.0, c.Segments[0].Percent)
	assert.Equal(t, "100.00 0.00", c.Segments[0].DashArray)
}
