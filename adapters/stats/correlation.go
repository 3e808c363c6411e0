package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"statreport/domain/analysis"
	"statreport/domain/dataset"
)

// Correlate computes the pairwise-complete Pearson matrix over all numeric
// columns. Each unordered pair is computed once and mirrored, so the matrix
// is symmetric by construction. Fewer than 2 numeric columns yield an empty
// matrix, not an error.
func Correlate(ds *dataset.Dataset) analysis.CorrelationMatrix {
	numeric := ds.NumericColumns()
	if len(numeric) < 2 {
		return analysis.CorrelationMatrix{}
	}

	names := make([]string, len(numeric))
	for i, c := range numeric {
		names[i] = c.Name
	}
	matrix := analysis.NewCorrelationMatrix(names)

	for i, a := range numeric {
		// Diagonal: exactly 1.0 for any column with spread, undefined for a
		// constant or near-empty column.
		values := a.NonMissing()
		if len(values) >= 2 && stat.Variance(values, nil) != 0 {
			matrix.Set(a.Name, a.Name, 1.0)
		}

		for j := i + 1; j < len(numeric); j++ {
			matrix.Set(a.Name, numeric[j].Name, pairwisePearson(a, numeric[j]))
		}
	}

	return matrix
}

// pairwisePearson computes Pearson's r over the rows where both columns are
// present. Rows missing in unrelated columns do not exclude a row here. The
// result is NaN, never a divide-by-zero failure, when fewer than 2 paired
// rows exist or either paired variance is exactly zero.
func pairwisePearson(a, b dataset.Column) float64 {
	xs := make([]float64, 0, len(a.Floats))
	ys := make([]float64, 0, len(b.Floats))
	for i := range a.Floats {
		if math.IsNaN(a.Floats[i]) || math.IsNaN(b.Floats[i]) {
			continue
		}
		xs = append(xs, a.Floats[i])
		ys = append(ys, b.Floats[i])
	}

	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
