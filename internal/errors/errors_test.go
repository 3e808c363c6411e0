package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := ColumnNotFound("age")
	wrapped := Wrapf(base, "failed to compare groups in %s", "survey.csv")

	if !HasCode(wrapped, CodeColumnNotFound) {
		t.Errorf("wrapping should preserve the code, got %s", GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestWrapForeignErrorGetsInternalCode(t *testing.T) {
	wrapped := Wrap(stderrors.New("boom"), "context")
	if !HasCode(wrapped, CodeInternal) {
		t.Errorf("foreign causes should classify as internal, got %s", GetCode(wrapped))
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestGetCodeForeign(t *testing.T) {
	if code := GetCode(stderrors.New("plain")); code != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for a plain error, got %s", code)
	}
}

func TestIsAnalysisError(t *testing.T) {
	analysis := []error{
		ColumnNotFound("x"),
		WrongColumnKind("x", "numeric", "categorical"),
		GroupCountMismatch("g", 3),
		InsufficientData("too few rows"),
	}
	for _, err := range analysis {
		if !IsAnalysisError(err) {
			t.Errorf("%v should be an analysis error", err)
		}
	}

	fatal := []error{
		DataNotFound("f.csv", nil),
		DataMalformed("bad row"),
		DataEmpty("no rows"),
		DatabaseError("insert failed", nil),
	}
	for _, err := range fatal {
		if IsAnalysisError(err) {
			t.Errorf("%v should not be an analysis error", err)
		}
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := DatabaseError("insert failed", stderrors.New("connection reset"))
	want := "insert failed: connection reset"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
