package stats

import (
	"math"
	"reflect"
	"testing"

	"statreport/domain/dataset"
)

func mustDataset(t *testing.T, header []string, rows [][]string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromRecords(header, rows)
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}
	return ds
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(want) {
		if !math.IsNaN(got) {
			t.Errorf("%s = %v, want NaN", name, got)
		}
		return
	}
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

func TestDescribeKnownValues(t *testing.T) {
	ds := mustDataset(t,
		[]string{"v"},
		[][]string{{"2"}, {"4"}, {"4"}, {"4"}, {"5"}, {"5"}, {"7"}, {"9"}},
	)

	summary := Describe(ds)
	s, ok := summary.ByColumn["v"]
	if !ok {
		t.Fatal("summary missing column v")
	}

	if s.Count != 8 {
		t.Errorf("count = %d, want 8", s.Count)
	}
	approx(t, "mean", float64(s.Mean), 5.0, 1e-9)
	// Sample standard deviation with the n-1 denominator.
	approx(t, "std", float64(s.StdDev), math.Sqrt(32.0/7.0), 1e-9)
	approx(t, "min", float64(s.Min), 2, 1e-9)
	approx(t, "max", float64(s.Max), 9, 1e-9)
	approx(t, "median", float64(s.Median), 4.5, 1e-9)
}

func TestDescribeQuantileInterpolation(t *testing.T) {
	ds := mustDataset(t, []string{"v"}, [][]string{{"1"}, {"2"}, {"3"}, {"4"}})

	s := Describe(ds).ByColumn["v"]
	// Linear interpolation at rank p*(n-1).
	approx(t, "q25", float64(s.Q25), 1.75, 1e-9)
	approx(t, "median", float64(s.Median), 2.5, 1e-9)
	approx(t, "q75", float64(s.Q75), 3.25, 1e-9)
}

func TestDescribeIgnoresMissing(t *testing.T) {
	ds := mustDataset(t, []string{"v"}, [][]string{{"10"}, {""}, {"20"}, {""}})

	s := Describe(ds).ByColumn["v"]
	if s.Count != 2 {
		t.Errorf("count = %d, want 2 (missing cells excluded)", s.Count)
	}
	approx(t, "mean", float64(s.Mean), 15, 1e-9)
}

func TestDescribeAllMissingColumn(t *testing.T) {
	ds := mustDataset(t, []string{"v", "w"}, [][]string{{"", "1"}, {"", "2"}})

	s := Describe(ds).ByColumn["v"]
	if s.Count != 0 {
		t.Fatalf("count = %d, want 0", s.Count)
	}
	for name, v := range map[string]float64{
		"mean": float64(s.Mean), "std": float64(s.StdDev),
		"min": float64(s.Min), "q25": float64(s.Q25),
		"median": float64(s.Median), "q75": float64(s.Q75), "max": float64(s.Max),
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s of an empty column = %v, want NaN", name, v)
		}
	}
}

func TestDescribeSingleObservation(t *testing.T) {
	ds := mustDataset(t, []string{"v", "pad"}, [][]string{{"42", "x"}})

	s := Describe(ds).ByColumn["v"]
	if s.Count != 1 {
		t.Fatalf("count = %d, want 1", s.Count)
	}
	approx(t, "std", float64(s.StdDev), 0, 0)
	for name, v := range map[string]float64{
		"mean": float64(s.Mean), "min": float64(s.Min),
		"q25": float64(s.Q25), "median": float64(s.Median),
		"q75": float64(s.Q75), "max": float64(s.Max),
	} {
		approx(t, name, v, 42, 0)
	}
}

func TestDescribeConstantColumn(t *testing.T) {
	ds := mustDataset(t, []string{"v"}, [][]string{{"5"}, {"5"}, {"5"}})

	s := Describe(ds).ByColumn["v"]
	approx(t, "std", float64(s.StdDev), 0, 0)
	approx(t, "mean", float64(s.Mean), 5, 0)
}

func TestDescribeIdempotent(t *testing.T) {
	ds := mustDataset(t,
		[]string{"a", "b"},
		[][]string{{"1", "9"}, {"2", "4"}, {"3", "6"}, {"4", "2"}},
	)

	first := Describe(ds)
	second := Describe(ds)
	if !reflect.DeepEqual(first, second) {
		t.Error("Describe must be deterministic over the same dataset")
	}

	m1 := Correlate(ds)
	m2 := Correlate(ds)
	if !reflect.DeepEqual(m1, m2) {
		t.Error("Correlate must be deterministic over the same dataset")
	}
}

func TestDescribeSkipsCategorical(t *testing.T) {
	ds := mustDataset(t,
		[]string{"name", "age"},
		[][]string{{"alice", "30"}, {"bob", "40"}},
	)

	summary := Describe(ds)
	if len(summary.Columns) != 1 || summary.Columns[0] != "age" {
		t.Errorf("only numeric columns belong in the summary, got %v", summary.Columns)
	}
	if summary.Has("name") {
		t.Error("categorical column should not be summarized")
	}
}
