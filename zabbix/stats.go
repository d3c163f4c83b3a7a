package zabbix

import (
	"math"
	"sort"
)

// StatKind is the shape of a statistic result.
type StatKind int

const (
	// StatScalar results carry a float: mean, avg, median, stdev, sum, range, mad.
	StatScalar StatKind = iota
	// StatCount results carry an integer.
	StatCount
	// StatSamples results carry a sample subsequence: min, max, last.
	StatSamples
)

// statKinds doubles as the registry of supported operation names. "avg" is a
// historical alias of "mean"; both stay supported.
var statKinds = map[string]StatKind{
	"min":    StatSamples,
	"max":    StatSamples,
	"last":   StatSamples,
	"mean":   StatScalar,
	"avg":    StatScalar,
	"median": StatScalar,
	"stdev":  StatScalar,
	"sum":    StatScalar,
	"range":  StatScalar,
	"mad":    StatScalar,
	"count":  StatCount,
}

// IsValidStatistic reports whether op names a supported reduction.
func IsValidStatistic(op string) bool {
	_, ok := statKinds[op]
	return ok
}

// StatResult is the tagged result of a reduction. Empty marks the documented
// empty-input sentinel: a well-formed operation over zero samples is not an
// error, and callers must check Empty before reading the numeric fields.
type StatResult struct {
	Op      string
	Kind    StatKind
	Empty   bool
	Scalar  float64
	Count   int
	Samples []Sample
}

// Value renders the wire shape callers of the original layer depend on:
// a sample list for min/max/last, an integer for count, a float otherwise.
// The empty sentinel renders as an empty list regardless of kind.
func (r StatResult) Value() any {
	if r.Empty {
		return []Sample{}
	}
	switch r.Kind {
	case StatSamples:
		return r.Samples
	case StatCount:
		return r.Count
	default:
		return r.Scalar
	}
}

// Compute reduces a sample sequence to the named statistic. It is a pure
// function: the input slice is never reordered or mutated. Unknown operation
// names fail with UnsupportedStatisticError even on empty input.
func Compute(samples []Sample, op string) (StatResult, error) {
	kind, ok := statKinds[op]
	if !ok {
		return StatResult{}, &UnsupportedStatisticError{Op: op}
	}

	res := StatResult{Op: op, Kind: kind}
	if len(samples) == 0 {
		res.Empty = true
		return res, nil
	}

	switch op {
	case "min":
		res.Samples = tiedAtExtreme(samples, false)
	case "max":
		res.Samples = tiedAtExtreme(samples, true)
	case "last":
		res.Samples = lastSamples(samples)
	case "mean", "avg":
		res.Scalar = mean(sampleValues(samples))
	case "median":
		res.Scalar = median(sampleValues(samples))
	case "stdev":
		res.Scalar = sampleStdev(sampleValues(samples))
	case "sum":
		res.Scalar = sum(sampleValues(samples))
	case "count":
		res.Count = len(samples)
	case "range":
		values := sampleValues(samples)
		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		res.Scalar = hi - lo
	case "mad":
		values := sampleValues(samples)
		med := median(values)
		devs := make([]float64, len(values))
		for i, v := range values {
			devs[i] = math.Abs(v - med)
		}
		res.Scalar = median(devs)
	}
	return res, nil
}

func sampleValues(samples []Sample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	return values
}

// tiedAtExtreme returns every sample whose value equals the extreme, in
// original order. Equality is exact; ties are intentional, not a float bug.
func tiedAtExtreme(samples []Sample, wantMax bool) []Sample {
	extreme := samples[0].Value
	for _, s := range samples[1:] {
		if (wantMax && s.Value > extreme) || (!wantMax && s.Value < extreme) {
			extreme = s.Value
		}
	}
	var out []Sample
	for _, s := range samples {
		if s.Value == extreme {
			out = append(out, s)
		}
	}
	return out
}

// lastSamples returns every sample sharing the maximum clock, in original
// order.
func lastSamples(samples []Sample) []Sample {
	latest := samples[0].Clock
	for _, s := range samples[1:] {
		if s.Clock > latest {
			latest = s.Clock
		}
	}
	var out []Sample
	for _, s := range samples {
		if s.Clock == latest {
			out = append(out, s)
		}
	}
	return out
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	return sum(values) / float64(len(values))
}

// median sorts a copy; the caller's slice stays untouched.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// sampleStdev is the n-1 (sample) standard deviation. A single sample has no
// spread; return 0 instead of dividing by zero.
func sampleStdev(values []float64) float64 {
	if len(values) == 1 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
