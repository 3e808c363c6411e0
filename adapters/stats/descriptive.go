// Package stats implements the descriptive, correlation, and hypothesis
// testing engines. All entry points are pure functions over an immutable
// Dataset and are safe to run concurrently.
package stats

import (
	"math"
	"sort"

	mfstats "github.com/montanaflynn/stats"

	"statreport/domain/analysis"
	"statreport/domain/dataset"
)

// Describe computes per-column summary statistics for every numeric column.
// Categorical columns are out of scope for numeric description and simply
// skipped. Missing values are filtered before any aggregation, so an
// all-missing column degrades to count==0 with undefined statistics rather
// than failing.
func Describe(ds *dataset.Dataset) analysis.DescriptiveSummary {
	summary := analysis.DescriptiveSummary{
		ByColumn: make(map[string]analysis.ColumnSummary),
	}
	for _, col := range ds.NumericColumns() {
		summary.Columns = append(summary.Columns, col.Name)
		summary.ByColumn[col.Name] = describeColumn(col)
	}
	return summary
}

func describeColumn(col dataset.Column) analysis.ColumnSummary {
	values := col.NonMissing()
	n := len(values)
	if n == 0 {
		nan := analysis.Float(math.NaN())
		return analysis.ColumnSummary{
			Count: 0, Mean: nan, StdDev: nan,
			Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan,
		}
	}

	mean, _ := mfstats.Mean(values)
	min, _ := mfstats.Min(values)
	max, _ := mfstats.Max(values)

	// Sample standard deviation, n-1 denominator. A single observation has
	// no spread, reported as 0 by convention.
	std := 0.0
	if n > 1 {
		std, _ = mfstats.StandardDeviationSample(values)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return analysis.ColumnSummary{
		Count:  n,
		Mean:   analysis.Float(mean),
		StdDev: analysis.Float(std),
		Min:    analysis.Float(min),
		Q25:    analysis.Float(quantile(sorted, 25)),
		Median: analysis.Float(quantile(sorted, 50)),
		Q75:    analysis.Float(quantile(sorted, 75)),
		Max:    analysis.Float(max),
	}
}

// quantile interpolates linearly between order statistics at rank
// h = p/100 * (n-1), the common "linear" quantile convention. Input must be
// sorted and non-empty.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p / 100 * float64(n-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
