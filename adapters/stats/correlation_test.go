package stats

import (
	"math"
	"testing"
)

func TestCorrelatePerfectRelationships(t *testing.T) {
	ds := mustDataset(t,
		[]string{"x", "up", "down"},
		[][]string{
			{"1", "2", "9"},
			{"2", "4", "7"},
			{"3", "6", "5"},
			{"4", "8", "3"},
		},
	)

	m := Correlate(ds)
	approx(t, "r(x, up)", m.At("x", "up"), 1, 1e-9)
	approx(t, "r(x, down)", m.At("x", "down"), -1, 1e-9)
}

func TestCorrelateSymmetryAndDiagonal(t *testing.T) {
	ds := mustDataset(t,
		[]string{"a", "b"},
		[][]string{{"1", "5"}, {"2", "3"}, {"3", "8"}, {"4", "6"}},
	)

	m := Correlate(ds)
	if m.At("a", "b") != m.At("b", "a") {
		t.Errorf("matrix must be symmetric: %v vs %v", m.At("a", "b"), m.At("b", "a"))
	}
	if m.At("a", "a") != 1.0 || m.At("b", "b") != 1.0 {
		t.Errorf("diagonal must be exactly 1.0, got %v and %v", m.At("a", "a"), m.At("b", "b"))
	}
	if r := m.At("a", "b"); r < -1 || r > 1 {
		t.Errorf("coefficient out of range: %v", r)
	}
}

func TestCorrelatePairwiseComplete(t *testing.T) {
	// Row 2 is missing in y but present in x and z; it must still count for
	// the (x, z) pair.
	ds := mustDataset(t,
		[]string{"x", "y", "z"},
		[][]string{
			{"1", "1", "2"},
			{"2", "", "4"},
			{"3", "3", "6"},
			{"4", "4", "8"},
		},
	)

	m := Correlate(ds)
	approx(t, "r(x, z)", m.At("x", "z"), 1, 1e-9)
	approx(t, "r(x, y)", m.At("x", "y"), 1, 1e-9)
}

func TestCorrelateZeroVariancePair(t *testing.T) {
	ds := mustDataset(t,
		[]string{"constant", "varies"},
		[][]string{{"5", "1"}, {"5", "2"}, {"5", "3"}},
	)

	m := Correlate(ds)
	if !math.IsNaN(m.At("constant", "varies")) {
		t.Errorf("correlation against a constant column must be NaN, got %v", m.At("constant", "varies"))
	}
	if !math.IsNaN(m.At("constant", "constant")) {
		t.Errorf("diagonal of a constant column is undefined, got %v", m.At("constant", "constant"))
	}
	if m.At("varies", "varies") != 1.0 {
		t.Errorf("diagonal of a varying column must be 1.0, got %v", m.At("varies", "varies"))
	}
}

func TestCorrelateTooFewPairedRows(t *testing.T) {
	ds := mustDataset(t,
		[]string{"x", "y"},
		[][]string{
			{"1", ""},
			{"2", "7"},
			{"3", ""},
		},
	)

	m := Correlate(ds)
	if !math.IsNaN(m.At("x", "y")) {
		t.Errorf("a single paired row cannot define r, got %v", m.At("x", "y"))
	}
}

func TestCorrelateNeedsTwoNumericColumns(t *testing.T) {
	ds := mustDataset(t,
		[]string{"v", "label"},
		[][]string{{"1", "a"}, {"2", "b"}},
	)

	if m := Correlate(ds); !m.Empty() {
		t.Errorf("fewer than 2 numeric columns should yield an empty matrix, got %v", m.Columns)
	}
}
