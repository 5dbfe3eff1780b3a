package oracle

import (
	"math"

	"github.com/jcalabro/lbf"
)

// Feature selects one field of an [lbf.Features] vector.
type Feature uint8

const (
	Length Feature = iota
	DigitCount
	HyphenCount

	numFeatures = 3
)

// String returns the feature name.
func (f Feature) String() string {
	switch f {
	case Length:
		return "length"
	case DigitCount:
		return "digit_count"
	case HyphenCount:
		return "hyphen_count"
	default:
		return "unknown"
	}
}

// Value returns the selected field of fv.
func (f Feature) Value(fv lbf.Features) int {
	switch f {
	case Length:
		return fv.Length
	case DigitCount:
		return fv.DigitCount
	case HyphenCount:
		return fv.HyphenCount
	default:
		return 0
	}
}

// Threshold accepts items whose feature value lies in [Min, Max].
type Threshold struct {
	Feature Feature
	Min     int
	Max     int
}

// AtLeast returns a Threshold accepting values >= lo.
func AtLeast(f Feature, lo int) Threshold {
	return Threshold{Feature: f, Min: lo, Max: math.MaxInt}
}

// AtMost returns a Threshold accepting values <= hi.
func AtMost(f Feature, hi int) Threshold {
	return Threshold{Feature: f, Min: math.MinInt, Max: hi}
}

// Classify implements lbf.Classifier.
func (t Threshold) Classify(fv lbf.Features) bool {
	v := t.Feature.Value(fv)
	return v >= t.Min && v <= t.Max
}

// All accepts an item when every classifier accepts it. An empty All
// accepts everything.
type All []lbf.Classifier

// Classify implements lbf.Classifier.
func (a All) Classify(fv lbf.Features) bool {
	for _, c := range a {
		if !c.Classify(fv) {
			return false
		}
	}
	return true
}

// Any accepts an item when at least one classifier accepts it. An empty
// Any rejects everything.
type Any []lbf.Classifier

// Classify implements lbf.Classifier.
func (a Any) Classify(fv lbf.Features) bool {
	for _, c := range a {
		if c.Classify(fv) {
			return true
		}
	}
	return false
}
