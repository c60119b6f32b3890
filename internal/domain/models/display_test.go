package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestNewVariation(t *testing.T) {
	t.Parallel()

	up := NewVariation(f(100), f(110))
	require.InDelta(t, 10.0, up.Percent, 1e-9)
	require.Equal(t, TrendPositive, up.Trend)
	require.Equal(t, "↑", up.Arrow())

	down := NewVariation(f(100), f(90))
	require.InDelta(t, -10.0, down.Percent, 1e-9)
	require.Equal(t, TrendNegative, down.Trend)
	require.Equal(t, "↓", down.Arrow())
}

func TestNewVariationFalsyInputs(t *testing.T) {
	t.Parallel()

	cases := map[string][2]*float64{
		"zero open":    {f(0), f(50)},
		"nil open":     {nil, f(50)},
		"nil current":  {f(100), nil},
		"zero current": {f(100), f(0)},
		"nan open":     {f(math.NaN()), f(50)},
	}
	for name, c := range cases {
		v := NewVariation(c[0], c[1])
		require.Zerof(t, v.Percent, "%s: expected zero variation", name)
		require.Equalf(t, TrendPositive, v.Trend, "%s: zero is shown as positive", name)
	}
}

func TestTrendOpposite(t *testing.T) {
	t.Parallel()
	require.Equal(t, TrendNegative, TrendPositive.Opposite())
	require.Equal(t, TrendPositive, TrendNegative.Opposite())
}

func TestRecommendationFor(t *testing.T) {
	t.Parallel()

	one, zero, two := 1, 0, 2
	require.Equal(t, RecommendationOperate, RecommendationFor(Prediction{PredictedClass: &one}))
	require.Equal(t, RecommendationHold, RecommendationFor(Prediction{PredictedClass: &zero}))
	require.Equal(t, RecommendationHold, RecommendationFor(Prediction{PredictedClass: &two}))
	require.Equal(t, RecommendationHold, RecommendationFor(Prediction{}))
}
