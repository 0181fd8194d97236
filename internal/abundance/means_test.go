// means_test.go: tests for the derived mean series.
package abundance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeansUndefinedWithoutSampling(t *testing.T) {
	g, err := NewGrid(1992, 1992)
	require.NoError(t, err)
	individuals := NewMatrix(1, g.Buckets())
	nights := NewMatrix(1, g.Buckets())

	d := Means(g, individuals, nights)

	for b := 0; b < g.Buckets(); b++ {
		assert.False(t, d.PerNight[0][b].OK, "bucket %d must be undefined, not zero", b)
	}
	for m := 0; m < 12; m++ {
		assert.False(t, d.Monthly[0][m].OK)
	}
	assert.False(t, d.Annual[0][0].OK)
}

// One night each in Jan and Feb 1992 with 2 and 4 individuals, nothing
// else sampled.
func TestMeansTwoMonthScenario(t *testing.T) {
	g, err := NewGrid(1992, 1992)
	require.NoError(t, err)
	individuals := NewMatrix(1, g.Buckets())
	nights := NewMatrix(1, g.Buckets())
	individuals.Add(0, 0, 2)
	nights.Add(0, 0, 1)
	individuals.Add(0, 1, 4)
	nights.Add(0, 1, 1)

	d := Means(g, individuals, nights)

	require.True(t, d.PerNight[0][0].OK)
	require.True(t, d.PerNight[0][1].OK)
	assert.InDelta(t, 2.0, d.PerNight[0][0].V, 1e-12)
	assert.InDelta(t, 4.0, d.PerNight[0][1].V, 1e-12)
	assert.False(t, d.PerNight[0][2].OK)

	require.True(t, d.Monthly[0][0].OK)
	require.True(t, d.Monthly[0][1].OK)
	assert.InDelta(t, 2.0, d.Monthly[0][0].V, 1e-12)
	assert.InDelta(t, 4.0, d.Monthly[0][1].V, 1e-12)

	assert.False(t, d.Annual[0][0].OK, "two sampled months must not yield an annual mean")
}

func TestMonthlyMeanSkipsUnsampledYears(t *testing.T) {
	g, err := NewGrid(1992, 1994)
	require.NoError(t, err)
	individuals := NewMatrix(1, g.Buckets())
	nights := NewMatrix(1, g.Buckets())

	// June sampled in 1992 and 1994 only. The unsampled 1993 must not
	// drag the average toward zero.
	individuals.Add(0, g.Index(1992, 6), 6)
	nights.Add(0, g.Index(1992, 6), 2)
	individuals.Add(0, g.Index(1994, 6), 10)
	nights.Add(0, g.Index(1994, 6), 2)

	d := Means(g, individuals, nights)

	june := d.Monthly[0][5]
	require.True(t, june.OK)
	assert.InDelta(t, 4.0, june.V, 1e-12) // (3 + 5) / 2
}

func TestAnnualCompletenessGate(t *testing.T) {
	g, err := NewGrid(2005, 2005)
	require.NoError(t, err)

	fill := func(months int) *Derived {
		individuals := NewMatrix(1, g.Buckets())
		nights := NewMatrix(1, g.Buckets())
		for m := 1; m <= months; m++ {
			individuals.Add(0, g.Index(2005, m), float64(m))
			nights.Add(0, g.Index(2005, m), 1)
		}
		return Means(g, individuals, nights)
	}

	assert.False(t, fill(11).Annual[0][0].OK, "11 of 12 months must not pass the gate")

	full := fill(12)
	require.True(t, full.Annual[0][0].OK)
	assert.InDelta(t, 6.5, full.Annual[0][0].V, 1e-12) // (1+..+12)/12
}

func TestMeansIdempotent(t *testing.T) {
	g, err := NewGrid(1992, 1993)
	require.NoError(t, err)
	individuals := NewMatrix(2, g.Buckets())
	nights := NewMatrix(2, g.Buckets())
	Accumulate(g, individuals, nights, 0, Visit{Year: 1992, Month: 2, Day: 3, Nights: 5}, 10)
	Accumulate(g, individuals, nights, 1, Visit{Year: 1993, Month: 7, Day: 14, Nights: 2}, 3)

	first := Means(g, individuals, nights)
	second := Means(g, individuals, nights)
	assert.Equal(t, first, second)
}

func TestGridIndexRoundTrip(t *testing.T) {
	g, err := NewGrid(1992, 2022)
	require.NoError(t, err)
	assert.Equal(t, 372, g.Buckets())

	for _, tc := range []struct {
		year, month, want int
	}{
		{1992, 1, 0},
		{1992, 12, 11},
		{1993, 1, 12},
		{2022, 12, 371},
	} {
		assert.Equal(t, tc.want, g.Index(tc.year, tc.month))
		y, m := g.YearMonth(tc.want)
		assert.Equal(t, tc.year, y)
		assert.Equal(t, tc.month, m)
	}
}

func TestNewGridRejectsInvertedRange(t *testing.T) {
	_, err := NewGrid(2000, 1999)
	assert.Error(t, err)
}
