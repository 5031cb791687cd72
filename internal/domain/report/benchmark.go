package report

import (
	"math"
	"sort"
)

// BenchmarkReport compares one venue's metric value against a cohort.
// Percentiles use the nearest-rank method on the sorted cohort values.
type BenchmarkReport struct {
	Metric        string  `json:"metric"`
	CohortSize    int     `json:"cohort_size"`
	VenueValue    float64 `json:"venue_value"`
	P25           float64 `json:"p25"`
	P50           float64 `json:"p50"`
	P75           float64 `json:"p75"`
	P90           float64 `json:"p90"`
	Standing      float64 `json:"standing"`        // Percent of cohort at or below the venue value
	DeltaToMedian float64 `json:"delta_to_median"` // VenueValue - P50
}

// NearestRankPercentile returns the p-th percentile of sorted ascending
// values using the nearest-rank method. Empty input returns zero.
func NearestRankPercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// CompareToCohort builds a benchmark report for a venue value against the
// cohort's metric series. An empty cohort yields a zero report with only the
// metric name and venue value populated.
func CompareToCohort(metric string, venueValue float64, cohortValues []float64) BenchmarkReport {
	rep := BenchmarkReport{
		Metric:     metric,
		CohortSize: len(cohortValues),
		VenueValue: venueValue,
	}
	if len(cohortValues) == 0 {
		return rep
	}

	sorted := make([]float64, len(cohortValues))
	copy(sorted, cohortValues)
	sort.Float64s(sorted)

	rep.P25 = NearestRankPercentile(sorted, 25)
	rep.P50 = NearestRankPercentile(sorted, 50)
	rep.P75 = NearestRankPercentile(sorted, 75)
	rep.P90 = NearestRankPercentile(sorted, 90)

	atOrBelow := sort.SearchFloat64s(sorted, venueValue)
	for atOrBelow < len(sorted) && sorted[atOrBelow] <= venueValue {
		atOrBelow++
	}
	rep.Standing = float64(atOrBelow) / float64(len(sorted)) * 100
	rep.DeltaToMedian = venueValue - rep.P50
	return rep
}
