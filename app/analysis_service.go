// Package app orchestrates the analysis pipeline: load, compute, assemble,
// render, persist.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"statreport/adapters/markdown"
	"statreport/adapters/stats"
	"statreport/domain/analysis"
	"statreport/internal"
	"statreport/internal/errors"
	"statreport/ports"
)

// AnalysisService runs end-to-end analyses. The dataset readers are keyed
// by file extension; the plot renderer and repository are optional
// collaborators.
type AnalysisService struct {
	readers map[string]ports.DatasetReader
	plots   ports.PlotRenderer
	repo    ports.ReportRepository
	opts    stats.TestOptions
	log     *internal.Logger
}

// NewAnalysisService wires the pipeline. A nil repo disables persistence; a
// nil plot renderer skips plot rendering (specs still appear in the report).
func NewAnalysisService(readers map[string]ports.DatasetReader, plots ports.PlotRenderer, repo ports.ReportRepository, opts stats.TestOptions, log *internal.Logger) *AnalysisService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &AnalysisService{readers: readers, plots: plots, repo: repo, opts: opts, log: log}
}

// Request describes one analysis invocation.
type Request struct {
	FilePath    string
	ProjectName string
	GroupColumn string
	ValueColumn string
	OutputPath  string // defaults to <basename>_analysis.md
	PlotsDir    string // defaults to "plots"
}

// Result is the finished run: the immutable report plus the artifacts
// written for it.
type Result struct {
	Report     *analysis.Report
	Markdown   string
	ReportPath string
	PlotPaths  []string
}

// Run executes the full pipeline. Load failures are fatal. Hypothesis-test
// analysis errors are locally recoverable: the section is omitted and the
// rest of the report is still produced.
func (s *AnalysisService) Run(ctx context.Context, req Request) (*Result, error) {
	reader, err := s.readerFor(req.FilePath)
	if err != nil {
		return nil, err
	}

	ds, err := reader.Read(req.FilePath)
	if err != nil {
		return nil, err
	}
	s.log.Info("loaded dataset %s: %d rows, %d columns", req.FilePath, ds.Rows(), ds.Cols())

	// The three engines are pure functions over the shared read-only
	// dataset, so they can run in parallel.
	var (
		summary analysis.DescriptiveSummary
		matrix  analysis.CorrelationMatrix
		hypo    *analysis.HypothesisTestResult
	)
	var g errgroup.Group
	g.Go(func() error {
		summary = stats.Describe(ds)
		return nil
	})
	g.Go(func() error {
		matrix = stats.Correlate(ds)
		return nil
	})
	if req.GroupColumn != "" && req.ValueColumn != "" {
		g.Go(func() error {
			h, err := stats.CompareGroups(ds, req.GroupColumn, req.ValueColumn, s.opts)
			if err != nil {
				if errors.IsAnalysisError(err) {
					s.log.Warn("hypothesis test omitted: %v", err)
					return nil
				}
				return err
			}
			hypo = h
			return nil
		})
	} else if req.GroupColumn != "" || req.ValueColumn != "" {
		s.log.Warn("hypothesis test needs both a group column and a value column; skipping")
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plots := stats.PlanPlots(summary, matrix)

	projectName := req.ProjectName
	if projectName == "" {
		projectName = "Research Project"
	}
	meta := analysis.ReportMeta{
		RunID:       newRunID(),
		ProjectName: projectName,
		GeneratedAt: time.Now().UTC(),
		SourcePath:  req.FilePath,
		Rows:        ds.Rows(),
		Cols:        ds.Cols(),
	}

	report, err := analysis.Assemble(meta, ds, summary, matrix, hypo, plots)
	if err != nil {
		return nil, err
	}

	md := markdown.Render(report)

	outPath := req.OutputPath
	if outPath == "" {
		outPath = defaultOutputPath(req.FilePath)
	}
	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		return nil, errors.Wrapf(errors.Newf(errors.CodeRender, "%v", err), "failed to write report %s", outPath)
	}

	var plotPaths []string
	if s.plots != nil && len(report.Plots) > 0 {
		dir := req.PlotsDir
		if dir == "" {
			dir = "plots"
		}
		plotPaths, err = s.plots.Render(ds, report, dir)
		if err != nil {
			return nil, err
		}
		s.log.Info("rendered %d plots to %s", len(plotPaths), dir)
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, report, md); err != nil {
			// Persistence is best-effort history; the on-disk report is the
			// primary artifact.
			s.log.Warn("failed to persist analysis run %s: %v", meta.RunID, err)
		}
	}

	s.log.Info("analysis report saved to %s", outPath)
	return &Result{Report: report, Markdown: md, ReportPath: outPath, PlotPaths: plotPaths}, nil
}

func (s *AnalysisService) readerFor(path string) (ports.DatasetReader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := s.readers[ext]
	if !ok {
		return nil, errors.DataMalformed("unsupported file type %q", ext)
	}
	return reader, nil
}

func defaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_analysis.md"
}

// newRunID returns a time-ordered UUID, falling back to v4 when v7 is
// unavailable.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
