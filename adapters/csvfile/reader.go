// Package csvfile loads delimited text files into datasets.
package csvfile

import (
	"encoding/csv"
	"os"

	"statreport/domain/dataset"
	"statreport/internal/errors"
)

// Reader loads CSV files. Fields containing the delimiter must be quoted
// per standard CSV quoting; the header row names the columns.
type Reader struct {
	// Comma overrides the field delimiter. Zero means ','.
	Comma rune
}

// NewReader creates a CSV reader with the default delimiter.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the file at path into a Dataset. Rows with field counts that
// disagree with the header fail the load; a header with zero data rows is
// reported as an empty dataset, distinct from malformed input.
func (r *Reader) Read(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.DataNotFound(path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}
	// FieldsPerRecord defaults to the header width, so encoding/csv rejects
	// ragged rows instead of silently truncating or padding.
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errors.DataMalformed("%v", err), "failed to parse %s", path)
	}

	if len(records) == 0 {
		return nil, errors.Wrapf(errors.DataMalformed("file has no header row"), "failed to parse %s", path)
	}

	ds, err := dataset.FromRecords(records[0], records[1:])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return ds, nil
}
