// Package stats aggregates metric value distributions into summaries,
// rankings, and threshold reports. Everything here is deterministic: ties
// always break on ascending scope name.
package stats

import (
	"math"
	"sort"

	"jca/internal/errors"
)

// Entry is one (scope, metric value) pair
type Entry struct {
	Scope string  `json:"scope"`
	Value float64 `json:"value"`
}

// Summary describes one metric's value distribution at one scope level
type Summary struct {
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Q3     float64 `json:"q3" yaml:"q3"`
}

// Summarize computes a statistical summary over a non-empty value sequence.
// The sequence is sorted once; min and max come from the sorted ends, the
// median averages the two middle elements for even counts, the standard
// deviation uses the population formula, and quartiles use nearest-rank
// indexing. An empty sequence is a contract violation.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, errors.New(errors.EmptyDistribution, "cannot summarize an empty value sequence", nil)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	variance := 0.0
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Summary{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(variance),
		Q1:     nearestRank(sorted, 0.25),
		Q3:     nearestRank(sorted, 0.75),
	}, nil
}

// nearestRank returns the p-th quantile by the nearest-rank method:
// the element at 1-based rank ceil(p * n)
func nearestRank(sorted []float64, p float64) float64 {
	rank := int(math.Ceil(p * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// Direction orders a ranking
type Direction string

const (
	// Descending ranks highest values first
	Descending Direction = "desc"
	// Ascending ranks lowest values first
	Ascending Direction = "asc"
)

// Rank returns the top n entries ordered by value in the given direction,
// ties broken by ascending scope name. n is clamped to the entry count.
func Rank(entries []Entry, n int, direction Direction) []Entry {
	out := append([]Entry(nil), entries...)
	sortEntries(out, direction)

	if n > len(out) {
		n = len(out)
	}
	if n < 0 {
		n = 0
	}
	return out[:n]
}

// Comparison selects a threshold operator
type Comparison string

const (
	// Greater keeps entries strictly above the threshold
	Greater Comparison = ">"
	// GreaterOrEqual keeps entries at or above the threshold
	GreaterOrEqual Comparison = ">="
	// Less keeps entries strictly below the threshold
	Less Comparison = "<"
	// LessOrEqual keeps entries at or below the threshold
	LessOrEqual Comparison = "<="
)

// FilterByThreshold returns the entries satisfying the comparison, sorted
// the same way rankings are: upper-bound comparisons descending, lower-bound
// comparisons ascending, so the worst offenders come first either way.
func FilterByThreshold(entries []Entry, threshold float64, cmp Comparison) []Entry {
	var out []Entry
	for _, e := range entries {
		if satisfies(e.Value, threshold, cmp) {
			out = append(out, e)
		}
	}

	direction := Descending
	if cmp == Less || cmp == LessOrEqual {
		direction = Ascending
	}
	sortEntries(out, direction)
	return out
}

func satisfies(v, threshold float64, cmp Comparison) bool {
	switch cmp {
	case Greater:
		return v > threshold
	case GreaterOrEqual:
		return v >= threshold
	case Less:
		return v < threshold
	case LessOrEqual:
		return v <= threshold
	}
	return false
}

func sortEntries(entries []Entry, direction Direction) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			if direction == Ascending {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Scope < entries[j].Scope
	})
}
