package stats

import (
	"statreport/domain/analysis"
)

// PlanPlots derives the ordered plot specifications for a report: one
// histogram per numeric column with at least one observation, in summary
// order, plus one correlation heat map when the matrix has entries. This is
// pure derivation of what should be drawn; rendering is a collaborator's
// job.
func PlanPlots(summary analysis.DescriptiveSummary, matrix analysis.CorrelationMatrix) []analysis.PlotSpec {
	var specs []analysis.PlotSpec

	for _, name := range summary.Columns {
		if summary.ByColumn[name].Count == 0 {
			continue
		}
		specs = append(specs, analysis.PlotSpec{
			Kind:     analysis.PlotHistogram,
			Columns:  []string{name},
			Filename: name + "_histogram.png",
		})
	}

	if !matrix.Empty() {
		specs = append(specs, analysis.PlotSpec{
			Kind:     analysis.PlotHeatmap,
			Columns:  matrix.Columns,
			Filename: "correlation_heatmap.png",
		})
	}

	return specs
}
