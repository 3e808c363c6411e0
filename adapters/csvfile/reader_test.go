package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"statreport/domain/dataset"
	"statreport/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestReadInfersColumns(t *testing.T) {
	path := writeFile(t, "survey.csv", "age,name,score\n25,alice,1.5\n30,bob,\n35,carol,2.5\n")

	ds, err := NewReader().Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if ds.Rows() != 3 || ds.Cols() != 3 {
		t.Fatalf("shape = (%d, %d), want (3, 3)", ds.Rows(), ds.Cols())
	}
	age, _ := ds.Column("age")
	if age.Kind != dataset.KindNumeric {
		t.Errorf("age kind = %s, want numeric", age.Kind)
	}
	name, _ := ds.Column("name")
	if name.Kind != dataset.KindCategorical {
		t.Errorf("name kind = %s, want categorical", name.Kind)
	}
}

func TestReadQuotedFields(t *testing.T) {
	path := writeFile(t, "quoted.csv", "city,note\nBerlin,\"a, quoted field\"\n")

	ds, err := NewReader().Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	note, _ := ds.Column("note")
	if note.Labels[0] != "a, quoted field" {
		t.Errorf("quoted field = %q", note.Labels[0])
	}
}

func TestReadCustomDelimiter(t *testing.T) {
	path := writeFile(t, "data.csv", "a;b\n1;2\n")

	ds, err := (&Reader{Comma: ';'}).Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ds.Cols() != 2 {
		t.Errorf("cols = %d, want 2", ds.Cols())
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := NewReader().Read(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.HasCode(err, errors.CodeDataNotFound) {
		t.Errorf("expected DATA_NOT_FOUND, got %v", err)
	}
}

func TestReadRaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b\n1,2\n3\n")

	_, err := NewReader().Read(path)
	if !errors.HasCode(err, errors.CodeDataMalformed) {
		t.Errorf("expected DATA_MALFORMED, got %v", err)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "a,b\n")

	_, err := NewReader().Read(path)
	if !errors.HasCode(err, errors.CodeDataEmpty) {
		t.Errorf("expected DATA_EMPTY, got %v", err)
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := writeFile(t, "blank.csv", "")

	_, err := NewReader().Read(path)
	if !errors.HasCode(err, errors.CodeDataMalformed) {
		t.Errorf("expected DATA_MALFORMED, got %v", err)
	}
}

func TestReadDuplicateHeaders(t *testing.T) {
	path := writeFile(t, "dup.csv", "a,a\n1,2\n")

	_, err := NewReader().Read(path)
	if !errors.HasCode(err, errors.CodeDataMalformed) {
		t.Errorf("expected DATA_MALFORMED, got %v", err)
	}
}
