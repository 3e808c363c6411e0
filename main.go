package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"statreport/adapters/csvfile"
	"statreport/adapters/excel"
	"statreport/adapters/markdown"
	"statreport/adapters/plot"
	"statreport/adapters/postgres"
	"statreport/adapters/stats"
	"statreport/app"
	"statreport/internal"
	"statreport/internal/config"
	"statreport/internal/errors"
	"statreport/ports"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	var repo ports.ReportRepository
	if cfg.Database.URL != "" {
		pg, err := postgres.NewReportRepository(context.Background(), cfg.Database.URL)
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

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/analyze", handleAnalyze(svc, logger))

	logger.Info("statreport API listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}

// handleAnalyze accepts a multipart upload ("file") plus optional form
// fields project_name, group_column and value_column, runs the pipeline in
// a per-request scratch directory, and returns the report as JSON together
// with its Markdown and HTML renderings. Plot PNGs are not returned; the
// plot specs in the report identify what a caller may render itself.
func handleAnalyze(svc *app.AnalysisService, logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		upload, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart field \"file\""})
			return
		}

		workDir, err := os.MkdirTemp("", "statreport-*")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to allocate scratch directory"})
			return
		}
		defer os.RemoveAll(workDir)

		dataPath := filepath.Join(workDir, filepath.Base(upload.Filename))
		if err := c.SaveUploadedFile(upload, dataPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
			return
		}

		result, err := svc.Run(c.Request.Context(), app.Request{
			FilePath:    dataPath,
			ProjectName: c.PostForm("project_name"),
			GroupColumn: c.PostForm("group_column"),
			ValueColumn: c.PostForm("value_column"),
			OutputPath:  filepath.Join(workDir, "report.md"),
			PlotsDir:    filepath.Join(workDir, "plots"),
		})
		if err != nil {
			code := errors.GetCode(err)
			logger.Warn("analysis request failed (%s): %v", code, err)
			c.JSON(statusFor(code), gin.H{"error": err.Error(), "code": code})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"report":   result.Report,
			"markdown": result.Markdown,
			"html":     markdown.RenderHTML(result.Report),
		})
	}
}

func statusFor(code string) int {
	switch code {
	case errors.CodeDataNotFound:
		return http.StatusNotFound
	case errors.CodeDataMalformed, errors.CodeDataEmpty,
		errors.CodeColumnNotFound, errors.CodeWrongColumnKind,
		errors.CodeGroupCountMismatch, errors.CodeInsufficientData:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
