package stats

import (
	"fmt"
	"math"
	"strconv"

	mfstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"statreport/domain/analysis"
	"statreport/domain/dataset"
	"statreport/internal/errors"
)

// TestOptions carries the significance threshold and confidence level for
// two-sample comparisons. Both are explicit parameters with the stated
// defaults rather than hidden constants.
type TestOptions struct {
	Alpha           float64
	ConfidenceLevel float64
}

// DefaultTestOptions returns alpha 0.05 and a 95% confidence level.
func DefaultTestOptions() TestOptions {
	return TestOptions{Alpha: 0.05, ConfidenceLevel: 0.95}
}

// CompareGroups runs an independent two-sample comparison of the value
// column between the two groups defined by the grouping column.
//
// The test is always the unequal-variance (Welch) formulation. No normality
// or equal-variance pre-checks are attempted: the minor power loss is an
// acceptable trade against mis-applying a pooled test to heteroscedastic
// groups.
func CompareGroups(ds *dataset.Dataset, groupCol, valueCol string, opts TestOptions) (*analysis.HypothesisTestResult, error) {
	gc, ok := ds.Column(groupCol)
	if !ok {
		return nil, errors.ColumnNotFound(groupCol)
	}
	vc, ok := ds.Column(valueCol)
	if !ok {
		return nil, errors.ColumnNotFound(valueCol)
	}
	if vc.Kind != dataset.KindNumeric {
		return nil, errors.WrongColumnKind(valueCol, string(dataset.KindNumeric), string(vc.Kind))
	}

	// Partition on distinct group values, restricted to rows where the value
	// is present. Rows missing either side contribute to neither group.
	samples := make(map[string][]float64)
	var order []string
	for i := 0; i < ds.Rows(); i++ {
		v := vc.Floats[i]
		if math.IsNaN(v) {
			continue
		}
		label, ok := groupLabel(gc, i)
		if !ok {
			continue
		}
		if _, seen := samples[label]; !seen {
			order = append(order, label)
		}
		samples[label] = append(samples[label], v)
	}

	// Strictly two-group comparison; more groups is a capability boundary,
	// not something to silently approximate.
	if len(order) != 2 {
		return nil, errors.GroupCountMismatch(groupCol, len(order))
	}

	g1, g2 := samples[order[0]], samples[order[1]]
	if len(g1) < 2 || len(g2) < 2 {
		return nil, errors.InsufficientData(fmt.Sprintf(
			"each group needs at least 2 observations, got %q=%d and %q=%d",
			order[0], len(g1), order[1], len(g2)))
	}

	return welch(groupCol, valueCol, order[0], g1, order[1], g2, opts), nil
}

func welch(groupCol, valueCol, label1 string, g1 []float64, label2 string, g2 []float64, opts TestOptions) *analysis.HypothesisTestResult {
	n1, n2 := float64(len(g1)), float64(len(g2))
	mean1, _ := mfstats.Mean(g1)
	mean2, _ := mfstats.Mean(g2)
	var1, _ := mfstats.SampleVariance(g1)
	var2, _ := mfstats.SampleVariance(g2)

	diff := mean1 - mean2
	se := math.Sqrt(var1/n1 + var2/n2)

	var tStat, df, pValue, ciLow, ciHigh float64
	if se == 0 {
		// Both groups have zero variance. A non-zero mean difference is
		// degenerate separation: t is infinite and p collapses to 0,
		// reported verbatim so callers can detect it.
		df = math.NaN()
		if diff != 0 {
			tStat = math.Inf(sign(diff))
			pValue = 0
		} else {
			tStat = math.NaN()
			pValue = math.NaN()
		}
		ciLow, ciHigh = diff, diff
	} else {
		tStat = diff / se
		df = welchSatterthwaite(var1, n1, var2, n2)

		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		pValue = 2 * tDist.CDF(-math.Abs(tStat))

		tCrit := tDist.Quantile(1 - (1-opts.ConfidenceLevel)/2)
		ciLow = diff - tCrit*se
		ciHigh = diff + tCrit*se
	}

	return &analysis.HypothesisTestResult{
		GroupColumn: groupCol,
		ValueColumn: valueCol,
		Groups: [2]analysis.GroupSample{
			{Label: label1, N: len(g1), Mean: analysis.Float(mean1), StdDev: analysis.Float(math.Sqrt(var1))},
			{Label: label2, N: len(g2), Mean: analysis.Float(mean2), StdDev: analysis.Float(math.Sqrt(var2))},
		},
		MeanDiff:         analysis.Float(diff),
		TStatistic:       analysis.Float(tStat),
		DegreesOfFreedom: analysis.Float(df),
		PValue:           analysis.Float(pValue),
		CohensD:          analysis.Float(cohensD(diff, var1, n1, var2, n2)),
		ConfidenceLevel:  opts.ConfidenceLevel,
		CILow:            analysis.Float(ciLow),
		CIHigh:           analysis.Float(ciHigh),
		Alpha:            opts.Alpha,
		Significant:      pValue < opts.Alpha,
	}
}

// welchSatterthwaite approximates the degrees of freedom for unequal
// variances.
func welchSatterthwaite(var1, n1, var2, n2 float64) float64 {
	a := var1 / n1
	b := var2 / n2
	return (a + b) * (a + b) / (a*a/(n1-1) + b*b/(n2-1))
}

// cohensD is the standardized effect size with pooled standard deviation,
// 0 when the pooled spread is zero.
func cohensD(diff, var1, n1, var2, n2 float64) float64 {
	pooled := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	if pooled == 0 {
		return 0
	}
	return diff / pooled
}

// groupLabel extracts a group key for row i, reporting false for missing
// cells so they are excluded from the partition.
func groupLabel(c dataset.Column, i int) (string, bool) {
	if c.Kind == dataset.KindCategorical {
		label := c.Labels[i]
		return label, label != ""
	}
	v := c.Floats[i]
	if math.IsNaN(v) {
		return "", false
	}
	return strconv.FormatFloat(v, 'g', -1, 64), true
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
