// Package excel loads xlsx workbooks into datasets.
package excel

import (
	"os"

	"github.com/xuri/excelize/v2"

	"statreport/domain/dataset"
	"statreport/internal/errors"
)

// Reader loads the first worksheet of an xlsx file through the same type
// inference as the CSV path.
type Reader struct{}

// NewReader creates an Excel reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the workbook at path into a Dataset.
func (r *Reader) Read(path string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.DataNotFound(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.DataMalformed("%v", err), "failed to open %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Wrapf(errors.DataMalformed("workbook has no sheets"), "failed to read %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(errors.DataMalformed("%v", err), "failed to read sheet %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(errors.DataMalformed("sheet %s has no header row", sheets[0]), "failed to read %s", path)
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, errors.Wrapf(errors.DataMalformed("row %d has %d fields, header has %d", i+1, len(row), len(header)), "failed to read %s", path)
		}
		// excelize trims trailing empty cells, so short rows are padded back
		// to the header width rather than rejected.
		for len(row) < len(header) {
			row = append(row, "")
		}
		data = append(data, row)
	}

	ds, err := dataset.FromRecords(header, data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return ds, nil
}
