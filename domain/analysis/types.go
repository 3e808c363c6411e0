package analysis

import (
	"encoding/json"
	"math"
	"time"

	"statreport/domain/dataset"
)

// Float is a float64 that serializes non-finite values as null. Summaries
// legitimately contain NaN ("undefined given the available data") and the
// degenerate hypothesis test yields ±Inf; standard JSON has no encoding for
// either.
type Float float64

// MarshalJSON encodes non-finite values as null.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes null as NaN.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// IsNaN reports whether the value is undefined.
func (f Float) IsNaN() bool { return math.IsNaN(float64(f)) }

// ColumnSummary is the fixed per-column record of descriptive statistics.
// Count is the non-missing row count; every other field is undefined (NaN)
// when the available data cannot define it.
type ColumnSummary struct {
	Count  int   `json:"count"`
	Mean   Float `json:"mean"`
	StdDev Float `json:"std"`
	Min    Float `json:"min"`
	Q25    Float `json:"q25"`
	Median Float `json:"median"`
	Q75    Float `json:"q75"`
	Max    Float `json:"max"`
}

// DescriptiveSummary maps numeric column names to their summaries, keeping
// dataset column order for rendering.
type DescriptiveSummary struct {
	Columns  []string                 `json:"columns"`
	ByColumn map[string]ColumnSummary `json:"by_column"`
}

// Has reports whether the summary covers the named column.
func (s DescriptiveSummary) Has(name string) bool {
	_, ok := s.ByColumn[name]
	return ok
}

// CorrelationMatrix is a square, symmetric Pearson coefficient matrix over
// numeric columns. Entries are NaN when fewer than 2 paired rows exist or a
// paired variance is zero.
type CorrelationMatrix struct {
	Columns []string                    `json:"columns"`
	Coeffs  map[string]map[string]Float `json:"coeffs"`
}

// NewCorrelationMatrix allocates an all-NaN matrix over the given columns.
func NewCorrelationMatrix(columns []string) CorrelationMatrix {
	coeffs := make(map[string]map[string]Float, len(columns))
	for _, a := range columns {
		row := make(map[string]Float, len(columns))
		for _, b := range columns {
			row[b] = Float(math.NaN())
		}
		coeffs[a] = row
	}
	return CorrelationMatrix{Columns: columns, Coeffs: coeffs}
}

// Set stores a coefficient for an unordered pair, mirroring it so the
// matrix stays symmetric by construction.
func (m CorrelationMatrix) Set(a, b string, r float64) {
	m.Coeffs[a][b] = Float(r)
	m.Coeffs[b][a] = Float(r)
}

// At returns the coefficient for (a, b), NaN if either column is absent.
func (m CorrelationMatrix) At(a, b string) float64 {
	row, ok := m.Coeffs[a]
	if !ok {
		return math.NaN()
	}
	v, ok := row[b]
	if !ok {
		return math.NaN()
	}
	return float64(v)
}

// Empty reports whether the matrix has no entries (fewer than 2 numeric
// columns in the dataset).
func (m CorrelationMatrix) Empty() bool { return len(m.Columns) < 2 }

// GroupSample describes one side of a two-sample comparison.
type GroupSample struct {
	Label  string `json:"label"`
	N      int    `json:"n"`
	Mean   Float  `json:"mean"`
	StdDev Float  `json:"std"`
}

// HypothesisTestResult is the outcome of an independent two-sample Welch
// comparison. Computed on demand, never mutated.
type HypothesisTestResult struct {
	GroupColumn string         `json:"group_column"`
	ValueColumn string         `json:"value_column"`
	Groups      [2]GroupSample `json:"groups"`

	MeanDiff         Float `json:"mean_diff"`
	TStatistic       Float `json:"t_statistic"`
	DegreesOfFreedom Float `json:"degrees_of_freedom"`
	PValue           Float `json:"p_value"`
	CohensD          Float `json:"cohens_d"`

	ConfidenceLevel float64 `json:"confidence_level"`
	CILow           Float   `json:"ci_low"`
	CIHigh          Float   `json:"ci_high"`

	Alpha       float64 `json:"alpha"`
	Significant bool    `json:"significant"`
}

// PlotKind enumerates the plot shapes the engine can request.
type PlotKind string

const (
	PlotHistogram PlotKind = "histogram"
	PlotHeatmap   PlotKind = "heatmap"
)

// PlotSpec describes a desired visualization, decoupled from rendering.
// The engine never produces pixels.
type PlotSpec struct {
	Kind     PlotKind `json:"kind"`
	Columns  []string `json:"columns"`
	Filename string   `json:"filename"`
}

// ReportMeta carries run identity and dataset shape.
type ReportMeta struct {
	RunID       string    `json:"run_id"`
	ProjectName string    `json:"project_name"`
	GeneratedAt time.Time `json:"generated_at"`
	SourcePath  string    `json:"source_path"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
}

// ColumnInfo is one dataset-overview row.
type ColumnInfo struct {
	Name string       `json:"name"`
	Kind dataset.Kind `json:"kind"`
}

// Report is the ordered composite document produced by the engine,
// immutable once assembled and independent of its serialization format.
type Report struct {
	Meta         ReportMeta            `json:"meta"`
	Overview     []ColumnInfo          `json:"overview"`
	Summary      DescriptiveSummary    `json:"summary"`
	Correlations CorrelationMatrix     `json:"correlations"`
	Hypothesis   *HypothesisTestResult `json:"hypothesis,omitempty"`
	Plots        []PlotSpec            `json:"plots"`
	Conclusion   string                `json:"conclusion"`
}
