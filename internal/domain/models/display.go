package models

import "math"

// Trend is the style class applied to the variation label and its card.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
)

// Opposite returns the class that must be removed when t is applied.
func (t Trend) Opposite() Trend {
	if t == TrendPositive {
		return TrendNegative
	}
	return TrendPositive
}

// Variation is the percentage move between the open and current BTC price.
type Variation struct {
	Percent float64
	Trend   Trend
}

// Arrow is the glyph shown before the percentage.
func (v Variation) Arrow() string {
	if v.Trend == TrendNegative {
		return "↓"
	}
	return "↑"
}

// NewVariation computes (current - open) / open * 100 when both values are
// truthy (present, non-zero and not NaN), otherwise 0.
func NewVariation(open, current *float64) Variation {
	var pct float64
	if truthy(open) && truthy(current) {
		pct = (*current - *open) / *open * 100
	}
	if pct >= 0 {
		return Variation{Percent: pct, Trend: TrendPositive}
	}
	return Variation{Percent: pct, Trend: TrendNegative}
}

func truthy(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v)
}

// Recommendation is the label and style shown for a prediction.
type Recommendation struct {
	Label string
	Style string
}

var (
	RecommendationOperate = Recommendation{Label: "Operate (possible rise)", Style: "recommendation success"}
	RecommendationHold    = Recommendation{Label: "Do not operate (possible fall)", Style: "recommendation danger"}
)

// RecommendationFor maps a prediction to its display label.
func RecommendationFor(p Prediction) Recommendation {
	if p.Favorable() {
		return RecommendationOperate
	}
	return RecommendationHold
}
