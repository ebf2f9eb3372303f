package stats

import (
	"math"
	"reflect"
	"testing"

	"jca/internal/errors"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("Min/Max = %v/%v, want 1/4", s.Min, s.Max)
	}
	if s.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", s.Mean)
	}
	if s.Median != 2.5 {
		t.Errorf("Median = %v, want 2.5", s.Median)
	}
	// population stddev of {1,2,3,4} is sqrt(1.25)
	if want := math.Sqrt(1.25); math.Abs(s.StdDev-want) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, want)
	}
	if s.Q1 != 1 || s.Q3 != 3 {
		t.Errorf("Q1/Q3 = %v/%v, want 1/3", s.Q1, s.Q3)
	}
}

func TestSummarizeOddCountMedian(t *testing.T) {
	s, err := Summarize([]float64{7, 1, 5})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Median != 5 {
		t.Errorf("Median = %v, want 5", s.Median)
	}
}

func TestSummarizeSingleValue(t *testing.T) {
	s, err := Summarize([]float64{42})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Min != 42 || s.Max != 42 || s.Mean != 42 || s.Median != 42 || s.Q1 != 42 || s.Q3 != 42 {
		t.Errorf("degenerate summary wrong: %+v", s)
	}
	if s.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0", s.StdDev)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	if _, err := Summarize(values); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !reflect.DeepEqual(values, []float64{3, 1, 2}) {
		t.Errorf("input mutated: %v", values)
	}
}

func TestSummarizeEmptyIsError(t *testing.T) {
	_, err := Summarize(nil)
	if err == nil {
		t.Fatal("empty sequence must error")
	}
	if !errors.HasCode(err, errors.EmptyDistribution) {
		t.Errorf("wrong error code: %v", err)
	}
}

func TestRankTopN(t *testing.T) {
	entries := []Entry{
		{Scope: "A", Value: 10},
		{Scope: "B", Value: 50},
		{Scope: "C", Value: 30},
	}

	if got := Rank(entries, 1, Descending); !reflect.DeepEqual(got, []Entry{{Scope: "B", Value: 50}}) {
		t.Errorf("top 1 = %v", got)
	}
	want := []Entry{{Scope: "B", Value: 50}, {Scope: "C", Value: 30}}
	if got := Rank(entries, 2, Descending); !reflect.DeepEqual(got, want) {
		t.Errorf("top 2 = %v, want %v", got, want)
	}
}

func TestRankClampsAndCopies(t *testing.T) {
	entries := []Entry{{Scope: "A", Value: 1}, {Scope: "B", Value: 2}}

	if got := Rank(entries, 10, Descending); len(got) != 2 {
		t.Errorf("n beyond length: got %d entries", len(got))
	}
	if got := Rank(entries, -1, Descending); len(got) != 0 {
		t.Errorf("negative n: got %d entries", len(got))
	}

	// input order must survive the ranking
	if entries[0].Scope != "A" {
		t.Error("Rank mutated its input")
	}
}

func TestRankAscending(t *testing.T) {
	entries := []Entry{
		{Scope: "A", Value: 10},
		{Scope: "B", Value: 50},
		{Scope: "C", Value: 30},
	}
	got := Rank(entries, 2, Ascending)
	want := []Entry{{Scope: "A", Value: 10}, {Scope: "C", Value: 30}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bottom 2 = %v, want %v", got, want)
	}
}

func TestRankTiesBreakOnScope(t *testing.T) {
	entries := []Entry{
		{Scope: "Z", Value: 5},
		{Scope: "A", Value: 5},
		{Scope: "M", Value: 5},
	}
	got := Rank(entries, 3, Descending)
	want := []Entry{{Scope: "A", Value: 5}, {Scope: "M", Value: 5}, {Scope: "Z", Value: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tied ranking = %v, want %v", got, want)
	}
}

func TestFilterByThreshold(t *testing.T) {
	entries := []Entry{
		{Scope: "A", Value: 4},
		{Scope: "B", Value: 12},
		{Scope: "C", Value: 10},
		{Scope: "D", Value: 25},
	}

	got := FilterByThreshold(entries, 10, Greater)
	want := []Entry{{Scope: "D", Value: 25}, {Scope: "B", Value: 12}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("> 10 = %v, want %v", got, want)
	}

	got = FilterByThreshold(entries, 10, GreaterOrEqual)
	want = []Entry{{Scope: "D", Value: 25}, {Scope: "B", Value: 12}, {Scope: "C", Value: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf(">= 10 = %v, want %v", got, want)
	}

	got = FilterByThreshold(entries, 10, Less)
	want = []Entry{{Scope: "A", Value: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("< 10 = %v, want %v", got, want)
	}

	if got := FilterByThreshold(entries, 100, Greater); len(got) != 0 {
		t.Errorf("no entry exceeds 100, got %v", got)
	}
}
