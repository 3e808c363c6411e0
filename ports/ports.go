package ports

import (
	"context"

	"statreport/domain/analysis"
	"statreport/domain/dataset"
)

// DatasetReader loads a tabular file into an immutable Dataset.
type DatasetReader interface {
	Read(path string) (*dataset.Dataset, error)
}

// PlotRenderer materializes plot specs into image files under dir. The
// analysis core only decides what to plot; rendering backends live behind
// this port.
type PlotRenderer interface {
	Render(ds *dataset.Dataset, report *analysis.Report, dir string) ([]string, error)
}

// ReportRepository persists finished analysis runs.
type ReportRepository interface {
	Save(ctx context.Context, report *analysis.Report, markdown string) error
}
