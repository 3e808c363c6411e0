package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"statreport/adapters/csvfile"
	"statreport/adapters/excel"
	"statreport/adapters/markdown"
	"statreport/adapters/plot"
	"statreport/adapters/postgres"
	"statreport/adapters/stats"
	"statreport/app"
	"statreport/internal"
	"statreport/internal/config"
	"statreport/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "statreport",
		Short: "Statistical analysis reports for tabular datasets",
	}

	rootCmd.AddCommand(newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		groupCol    string
		valueCol    string
		projectName string
		output      string
		plotsDir    string
		htmlOut     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [data-file]",
		Short: "Analyze a CSV or xlsx dataset and write a Markdown report",
		Long: `Load a delimited dataset, compute descriptive statistics and a Pearson
correlation matrix, optionally compare two groups with Welch's t-test, and
write a Markdown report plus plot images.

Example:
  statreport analyze survey.csv --group-col treatment --value-col score --project-name "Dosage Study"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], groupCol, valueCol, projectName, output, plotsDir, htmlOut)
		},
	}

	cmd.Flags().StringVar(&groupCol, "group-col", "", "Grouping column for the two-sample comparison")
	cmd.Flags().StringVar(&valueCol, "value-col", "", "Value column for the two-sample comparison")
	cmd.Flags().StringVar(&projectName, "project-name", "Research Project", "Project name shown in the report")
	cmd.Flags().StringVar(&output, "output", "", "Report path (default <basename>_analysis.md)")
	cmd.Flags().StringVar(&plotsDir, "plots-dir", "", "Directory for plot images (default from PLOTS_DIR, then \"plots\")")
	cmd.Flags().BoolVar(&htmlOut, "html", false, "Also write an HTML rendering next to the report")

	return cmd
}

func runAnalyze(cmd *cobra.Command, filePath, groupCol, valueCol, projectName, output, plotsDir string, htmlOut bool) error {
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var repo ports.ReportRepository
	if cfg.Database.URL != "" {
		pg, err := postgres.NewReportRepository(cmd.Context(), cfg.Database.URL)
		if err != nil {
			logger.Warn("run history disabled: %v", err)
		} else {
			defer pg.Close()
			repo = pg
		}
	}

	svc := app.NewAnalysisService(
		map[string]ports.DatasetReader{
			".csv":  csvfile.NewReader(),
			".xlsx": excel.NewReader(),
		},
		plot.NewRenderer(),
		repo,
		stats.TestOptions{Alpha: cfg.Analysis.Alpha, ConfidenceLevel: cfg.Analysis.ConfidenceLevel},
		logger,
	)

	if plotsDir == "" {
		plotsDir = cfg.Output.PlotsDir
	}

	result, err := svc.Run(cmd.Context(), app.Request{
		FilePath:    filePath,
		ProjectName: projectName,
		GroupColumn: groupCol,
		ValueColumn: valueCol,
		OutputPath:  output,
		PlotsDir:    plotsDir,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Report: %s\n", result.ReportPath)
	if len(result.PlotPaths) > 0 {
		fmt.Printf("Plots:  %d files in %s\n", len(result.PlotPaths), plotsDir)
	}

	if htmlOut {
		htmlPath := strings.TrimSuffix(result.ReportPath, ".md") + ".html"
		if err := os.WriteFile(htmlPath, []byte(markdown.RenderHTML(result.Report)), 0o644); err != nil {
			return err
		}
		fmt.Printf("HTML:   %s\n", htmlPath)
	}

	return nil
}
