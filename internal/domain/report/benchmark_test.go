package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestRankPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"p25 of ten values", 25, 30},
		{"p50 of ten values", 50, 50},
		{"p75 of ten values", 75, 80},
		{"p90 of ten values", 90, 90},
		{"p100 is the maximum", 100, 100},
		{"p0 is the minimum", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearestRankPercentile(sorted, tt.p))
		})
	}

	t.Run("empty input returns zero", func(t *testing.T) {
		assert.Zero(t, NearestRankPercentile(nil, 50))
	})

	t.Run("single value is every percentile", func(t *testing.T) {
		one := []float64{42}
		assert.Equal(t, 42.0, NearestRankPercentile(one, 25))
		assert.Equal(t, 42.0, NearestRankPercentile(one, 90))
	})
}

func TestCompareToCohort(t *testing.T) {
	cohort := []float64{90, 10, 50, 70, 30, 100, 20, 40, 80, 60}

	t.Run("reports percentiles over the sorted cohort", func(t *testing.T) {
		rep := CompareToCohort("sales_per_seat", 55, cohort)

		assert.Equal(t, 10, rep.CohortSize)
		assert.Equal(t, 30.0, rep.P25)
		assert.Equal(t, 50.0, rep.P50)
		assert.Equal(t, 80.0, rep.P75)
		assert.Equal(t, 90.0, rep.P90)
	})

	t.Run("standing counts cohort values at or below the venue", func(t *testing.T) {
		rep := CompareToCohort("sales_per_seat", 55, cohort)

		assert.Equal(t, 50.0, rep.Standing)
		assert.Equal(t, 5.0, rep.DeltaToMedian)
	})

	t.Run("venue equal to a cohort value counts it", func(t *testing.T) {
		rep := CompareToCohort("sales_per_seat", 50, cohort)

		assert.Equal(t, 50.0, rep.Standing)
		assert.Zero(t, rep.DeltaToMedian)
	})

	t.Run("empty cohort yields a zero report", func(t *testing.T) {
		rep := CompareToCohort("sales_per_seat", 55, nil)

		assert.Zero(t, rep.CohortSize)
		assert.Zero(t, rep.P50)
		assert.Zero(t, rep.Standing)
		assert.Equal(t, 55.0, rep.VenueValue)
	})

	t.Run("does not mutate the caller's series", func(t *testing.T) {
		series := []float64{3, 1, 2}

		CompareToCohort("covers", 2, series)

		assert.Equal(t, []float64{3, 1, 2}, series)
	})
}
