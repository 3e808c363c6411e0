package analysis

import (
	"statreport/domain/dataset"
	"statreport/internal/errors"
)

// Assemble combines the computed pieces into a single ordered Report. It is
// pure composition: no recomputation, and the only check is that a present
// hypothesis result cross-references columns the rest of the report knows
// about, so a renderer can link them.
func Assemble(meta ReportMeta, ds *dataset.Dataset, summary DescriptiveSummary, matrix CorrelationMatrix, hypo *HypothesisTestResult, plots []PlotSpec) (*Report, error) {
	if hypo != nil {
		if !summary.Has(hypo.ValueColumn) {
			return nil, errors.ColumnNotFound(hypo.ValueColumn)
		}
		if _, ok := ds.Column(hypo.GroupColumn); !ok {
			return nil, errors.ColumnNotFound(hypo.GroupColumn)
		}
	}

	overview := make([]ColumnInfo, 0, ds.Cols())
	for _, c := range ds.Columns() {
		overview = append(overview, ColumnInfo{Name: c.Name, Kind: c.Kind})
	}

	return &Report{
		Meta:         meta,
		Overview:     overview,
		Summary:      summary,
		Correlations: matrix,
		Hypothesis:   hypo,
		Plots:        plots,
		Conclusion:   defaultConclusion,
	}, nil
}

const defaultConclusion = "This analysis provides a descriptive overview of the dataset. " +
	"The findings highlight statistical relationships worth further investigation."
