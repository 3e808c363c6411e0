// Package markdown renders an assembled report to Markdown and HTML.
package markdown

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statreport/domain/analysis"
)

// statRows fixes the row order of the descriptive statistics table.
var statRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Render produces the ordered Markdown document for a report.
func Render(r *analysis.Report) string {
	var b strings.Builder

	b.WriteString("# Statistical Analysis Report\n\n")
	fmt.Fprintf(&b, "**Project Name:** %s\n", r.Meta.ProjectName)
	fmt.Fprintf(&b, "**Generated on:** %s\n", r.Meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Dataset Shape:** (%d, %d)\n", r.Meta.Rows, r.Meta.Cols)
	fmt.Fprintf(&b, "**Run ID:** %s\n", r.Meta.RunID)

	writeOverview(&b, r)
	writeDescriptive(&b, r)
	writeCorrelations(&b, r)
	writeHypothesis(&b, r)
	writeVisualizations(&b, r)

	b.WriteString("\n## Conclusion\n\n")
	b.WriteString(r.Conclusion)
	b.WriteString("\n")

	return b.String()
}

// RenderHTML converts the Markdown report to HTML.
func RenderHTML(r *analysis.Report) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(Render(r)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.Render(doc, renderer))
}

func writeOverview(b *strings.Builder, r *analysis.Report) {
	fmt.Fprintf(b, "\n## Dataset Overview\n\nThe dataset contains %d rows and %d columns.\n\n", r.Meta.Rows, r.Meta.Cols)
	b.WriteString("| Column Name | Data Type |\n|-------------|-----------|\n")
	for _, col := range r.Overview {
		fmt.Fprintf(b, "| %s | %s |\n", col.Name, col.Kind)
	}
}

func writeDescriptive(b *strings.Builder, r *analysis.Report) {
	if len(r.Summary.Columns) == 0 {
		return
	}

	b.WriteString("\n## Descriptive Statistics\n\nDescriptive statistics for numerical variables:\n\n")
	fmt.Fprintf(b, "| Statistic | %s |\n", strings.Join(r.Summary.Columns, " | "))
	b.WriteString("|-----------|" + strings.Repeat("--------|", len(r.Summary.Columns)) + "\n")

	for _, stat := range statRows {
		cells := make([]string, 0, len(r.Summary.Columns))
		for _, name := range r.Summary.Columns {
			s := r.Summary.ByColumn[name]
			switch stat {
			case "count":
				cells = append(cells, fmt.Sprintf("%d", s.Count))
			case "mean":
				cells = append(cells, fmtNum(s.Mean))
			case "std":
				cells = append(cells, fmtNum(s.StdDev))
			case "min":
				cells = append(cells, fmtNum(s.Min))
			case "25%":
				cells = append(cells, fmtNum(s.Q25))
			case "50%":
				cells = append(cells, fmtNum(s.Median))
			case "75%":
				cells = append(cells, fmtNum(s.Q75))
			case "max":
				cells = append(cells, fmtNum(s.Max))
			}
		}
		fmt.Fprintf(b, "| %s | %s |\n", stat, strings.Join(cells, " | "))
	}
}

func writeCorrelations(b *strings.Builder, r *analysis.Report) {
	m := r.Correlations
	if m.Empty() {
		return
	}

	b.WriteString("\n## Correlation Analysis\n\nCorrelation matrix for numerical variables:\n\n")
	fmt.Fprintf(b, "| Variable | %s |\n", strings.Join(m.Columns, " | "))
	b.WriteString("|----------|" + strings.Repeat("--------|", len(m.Columns)) + "\n")

	for _, a := range m.Columns {
		cells := make([]string, 0, len(m.Columns))
		for _, c := range m.Columns {
			cells = append(cells, fmtNum(analysis.Float(m.At(a, c))))
		}
		fmt.Fprintf(b, "| %s | %s |\n", a, strings.Join(cells, " | "))
	}
}

func writeHypothesis(b *strings.Builder, r *analysis.Report) {
	h := r.Hypothesis
	if h == nil {
		return
	}

	g1, g2 := h.Groups[0], h.Groups[1]

	b.WriteString("\n## Hypothesis Testing\n\n")
	fmt.Fprintf(b, "We conducted an independent two-sample Welch's t-test comparing the mean of '%s' between groups '%s' and '%s' of '%s'.\n\n",
		h.ValueColumn, g1.Label, g2.Label, h.GroupColumn)
	b.WriteString("H0: the group means are equal. H1: the group means differ.\n\n")
	b.WriteString("### Results\n\n")
	fmt.Fprintf(b, "- **Group 1 ('%s'):** Mean = %s, Std = %s, n = %d\n", g1.Label, fmtNum(g1.Mean), fmtNum(g1.StdDev), g1.N)
	fmt.Fprintf(b, "- **Group 2 ('%s'):** Mean = %s, Std = %s, n = %d\n", g2.Label, fmtNum(g2.Mean), fmtNum(g2.StdDev), g2.N)
	fmt.Fprintf(b, "- **Mean difference:** %s\n", fmtNum(h.MeanDiff))
	fmt.Fprintf(b, "- **t-statistic:** %s\n", fmtNum(h.TStatistic))
	fmt.Fprintf(b, "- **Degrees of freedom:** %s\n", fmtNum(h.DegreesOfFreedom))
	fmt.Fprintf(b, "- **p-value:** %s\n", fmtNum(h.PValue))
	fmt.Fprintf(b, "- **%d%% CI for mean difference:** [%s, %s]\n", int(h.ConfidenceLevel*100), fmtNum(h.CILow), fmtNum(h.CIHigh))
	fmt.Fprintf(b, "- **Effect size (Cohen's d):** %s\n", fmtNum(h.CohensD))
	fmt.Fprintf(b, "- **Significant difference:** %s\n", yesNo(h.Significant))

	verdict := "fail to reject"
	if h.Significant {
		verdict = "reject"
	}
	fmt.Fprintf(b, "\nBased on the p-value %s, we %s the null hypothesis at α = %g.\n", fmtNum(h.PValue), verdict, h.Alpha)
}

func writeVisualizations(b *strings.Builder, r *analysis.Report) {
	if len(r.Plots) == 0 {
		return
	}

	b.WriteString("\n## Visualizations\n\nThe following plots were generated as part of the analysis:\n\n")
	for _, spec := range r.Plots {
		fmt.Fprintf(b, "- ![%s](%s)\n", spec.Filename, spec.Filename)
	}
}

// fmtNum renders a statistic for the report: three decimals for finite
// values, "inf" for infinities, "N/A" for undefined quantities.
func fmtNum(f analysis.Float) string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "N/A"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%.3f", v)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
