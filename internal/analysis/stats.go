package analysis

import (
	"math"
	"sort"
)

// Summarize computes descriptive statistics over the full multiset of row
// lengths. The quantile rule is deliberately non-standard and must stay
// exactly as written for report compatibility: quartile indices use integer
// division, and when n (or 3n) divides evenly by 4 the quartile is the
// integer average of the two straddling elements. Variance is population
// variance (divisor n, not n-1).
func Summarize(lengths []int) StatisticsSummary {
	if len(lengths) == 0 {
		return StatisticsSummary{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	n := len(sorted)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	mean := float64(sum) / float64(n)

	var median int
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		median = sorted[n/2]
	}

	q1Idx := n / 4
	var q1 int
	if n%4 == 0 {
		q1 = (sorted[q1Idx-1] + sorted[q1Idx]) / 2
	} else {
		q1 = sorted[q1Idx]
	}

	q3Idx := 3 * n / 4
	var q3 int
	if (3*n)%4 == 0 {
		q3 = (sorted[q3Idx-1] + sorted[q3Idx]) / 2
	} else {
		q3 = sorted[q3Idx]
	}

	variance := 0.0
	for _, v := range sorted {
		diff := float64(v) - mean
		variance += diff * diff
	}
	variance /= float64(n)

	return StatisticsSummary{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: median,
		Q1:     q1,
		Q3:     q3,
		StdDev: math.Sqrt(variance),
	}
}
