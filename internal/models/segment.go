package models

import "github.com/shopspring/decimal"

// Segment is a discrete value tier derived from lifetime spend. The same
// labels are used for display and for filtering, but the two mappings are
// intentionally not symmetric: the displayed tier puts exactly 100000 in
// medium_value and exactly 50000 in low_value, while the filter's
// medium_value range is the closed interval [50000, 100000].
type Segment string

const (
	SegmentHighValue   Segment = "high_value"
	SegmentMediumValue Segment = "medium_value"
	SegmentLowValue    Segment = "low_value"
	SegmentAtRisk      Segment = "at_risk"
)

var (
	// HighValueThreshold is the exclusive lower bound of high_value spend.
	HighValueThreshold = decimal.NewFromInt(100000)
	// MediumValueThreshold is the exclusive lower bound of medium_value
	// spend for display, and the inclusive lower bound for filtering.
	MediumValueThreshold = decimal.NewFromInt(50000)
)

// SegmentForSpend classifies lifetime spend into the displayed value tier.
func SegmentForSpend(totalSpent decimal.Decimal) Segment {
	switch {
	case totalSpent.GreaterThan(HighValueThreshold):
		return SegmentHighValue
	case totalSpent.GreaterThan(MediumValueThreshold):
		return SegmentMediumValue
	default:
		return SegmentLowValue
	}
}

// ValidFilterSegment reports whether a segment key is accepted by the
// listing filter. The empty key means "no segment constraint".
func ValidFilterSegment(key string) bool {
	switch Segment(key) {
	case SegmentHighValue, SegmentMediumValue, SegmentLowValue, SegmentAtRisk:
		return true
	}
	return key == ""
}
