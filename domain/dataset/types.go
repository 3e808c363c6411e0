package dataset

import (
	"math"
	"strconv"
	"strings"

	"statreport/internal/errors"
)

// Kind is the inferred type of a column, decided once at load time.
// A column is never partially numeric.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Column holds one named column of cell values. Exactly one of Floats or
// Labels is populated, matching Kind. NaN marks a missing numeric cell,
// the empty string marks a missing categorical cell.
type Column struct {
	Name   string    `json:"name"`
	Kind   Kind      `json:"kind"`
	Floats []float64 `json:"-"`
	Labels []string  `json:"-"`
}

// Len returns the row count of the column.
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Labels)
}

// NonMissing returns the column's numeric values with NaN filtered out.
// Only meaningful for numeric columns.
func (c Column) NonMissing() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Dataset is an ordered sequence of equally sized columns. It is created
// once at load and read-only afterward; downstream engines never mutate it
// and may share it across concurrent analyses.
type Dataset struct {
	columns []Column
	byName  map[string]int
	rows    int
}

// Rows returns the data row count (header excluded).
func (d *Dataset) Rows() int { return d.rows }

// Cols returns the column count.
func (d *Dataset) Cols() int { return len(d.columns) }

// Columns returns the columns in file order. Callers must treat the
// returned slice as read-only.
func (d *Dataset) Columns() []Column { return d.columns }

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	idx, ok := d.byName[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[idx], true
}

// NumericColumns returns the numeric columns in file order.
func (d *Dataset) NumericColumns() []Column {
	var out []Column
	for _, c := range d.columns {
		if c.Kind == KindNumeric {
			out = append(out, c)
		}
	}
	return out
}

// FromRecords builds a Dataset from a header row and data rows, inferring
// each column's kind. The decision is whole-column: a column is numeric iff
// every non-empty cell parses as a finite float; otherwise it is
// categorical. Unparseable or empty cells become the missing marker for the
// inferred kind. A column with no non-empty cells at all is numeric
// (all-missing), so downstream summaries degrade to count==0 instead of
// dropping the column.
func FromRecords(header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, errors.DataMalformed("header row has zero fields")
	}

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.DataMalformed("header field %d is empty", i+1)
		}
		if seen[name] {
			return nil, errors.DataMalformed("duplicate header field %q", name)
		}
		seen[name] = true
		header[i] = name
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, errors.DataMalformed("row %d has %d fields, header has %d", i+1, len(row), len(header))
		}
	}

	if len(rows) == 0 {
		return nil, errors.DataEmpty("no data rows after header")
	}

	ds := &Dataset{
		columns: make([]Column, len(header)),
		byName:  make(map[string]int, len(header)),
		rows:    len(rows),
	}

	for j, name := range header {
		cells := make([]string, len(rows))
		for i := range rows {
			cells[i] = strings.TrimSpace(rows[i][j])
		}
		ds.columns[j] = inferColumn(name, cells)
		ds.byName[name] = j
	}

	return ds, nil
}

func inferColumn(name string, cells []string) Column {
	numeric := true
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if _, ok := parseNumeric(cell); !ok {
			numeric = false
			break
		}
	}

	if numeric {
		floats := make([]float64, len(cells))
		for i, cell := range cells {
			if cell == "" {
				floats[i] = math.NaN()
				continue
			}
			v, _ := parseNumeric(cell)
			floats[i] = v
		}
		return Column{Name: name, Kind: KindNumeric, Floats: floats}
	}

	labels := make([]string, len(cells))
	copy(labels, cells)
	return Column{Name: name, Kind: KindCategorical, Labels: labels}
}

// parseNumeric accepts integer and floating-point literals, rejecting the
// textual Inf/NaN forms strconv would otherwise admit.
func parseNumeric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
