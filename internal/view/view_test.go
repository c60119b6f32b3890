package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"MarketDash/internal/domain/models"
	drepo "MarketDash/internal/domain/repository"
)

var (
	_ drepo.View = (*StateView)(nil)
	_ drepo.View = (*ConsoleView)(nil)
)

func TestStateView_InitialPlaceholders(t *testing.T) {
	t.Parallel()

	s := NewStateView(0).Snapshot()

	require.Equal(t, "--", s.BTCOpen)
	require.Equal(t, "--", s.VIXCurrentPrice)
	require.False(t, s.MarketVisible)
	require.False(t, s.PredictionVisible)
	require.False(t, s.Loading)
	require.Zero(t, s.Version)
}

func TestStateView_Regions(t *testing.T) {
	t.Parallel()

	v := NewStateView(4)
	v.SetBTCVariation("↓ -10,00%", models.TrendNegative)
	v.SetRecommendation("Operate (possible rise)", "recommendation success")
	v.ShowError("Failed to get prediction: boom")
	v.HideError()
	v.Acknowledge("done")
	v.Acknowledge("done")

	s := v.Snapshot()
	require.Equal(t, "↓ -10,00%", s.BTCVariation)
	require.Equal(t, models.TrendNegative, s.BTCTrend)
	require.Equal(t, "recommendation success", s.RecommendationStyle)
	require.False(t, s.ErrorVisible)
	require.Equal(t, "Failed to get prediction: boom", s.Error)
	require.Equal(t, uint64(2), s.NoticeSeq)
	require.Equal(t, uint64(6), s.Version)
}

func TestStateView_Subscribe(t *testing.T) {
	t.Parallel()

	v := NewStateView(2)
	ch := v.Subscribe()

	v.ShowLoading()
	v.HideLoading()
	v.ShowMarketData() // buffer full, dropped

	first := <-ch
	require.True(t, first.Loading)
	second := <-ch
	require.False(t, second.Loading)
	select {
	case f := <-ch:
		t.Fatalf("expected dropped frame, got version %d", f.Version)
	default:
	}
	require.True(t, v.Snapshot().MarketVisible)

	v.Unsubscribe(ch)
	_, open := <-ch
	require.False(t, open)

	v.ShowPrediction() // no panic after unsubscribe
}

func TestConsoleView(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewConsoleView(&buf, false)
	c.ShowLoading()
	c.SetBTCCurrent("$110,00")
	c.SetBTCVariation("↑ 10,00%", models.TrendPositive)
	c.HideLoading()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "btc current:       $110,00", lines[0])
	require.Contains(t, lines[1], "↑ 10,00% (positive)")
}
