// Package view holds the View implementations the dashboard renders into.
package view

import (
	"sync"

	"MarketDash/internal/domain/models"
	"MarketDash/pkg/util"
)

// State is one frame of the dashboard. Field names follow the page regions.
type State struct {
	Version uint64 `json:"version"`

	CurrentDate string `json:"current_date"`

	BTCOpen         string       `json:"btc_open"`
	BTCCloseMA3     string       `json:"btc_close_ma3"`
	BTCCurrent      string       `json:"btc_current"`
	BTCVariation    string       `json:"btc_variation"`
	BTCTrend        models.Trend `json:"btc_trend,omitempty"`
	VIXOpen         string       `json:"vix_open"`
	VIXCloseMA3     string       `json:"vix_close_ma3"`
	VIXCurrentPrice string       `json:"vix_current_price"`
	MarketVisible   bool         `json:"market_visible"`
	LastUpdated     string       `json:"last_updated"`

	PredictionDate      string `json:"prediction_date"`
	Recommendation      string `json:"recommendation"`
	RecommendationStyle string `json:"recommendation_style"`
	PredictionVisible   bool   `json:"prediction_visible"`

	Error        string `json:"error"`
	ErrorVisible bool   `json:"error_visible"`
	Loading      bool   `json:"loading"`

	// Notice is the last acknowledgement. NoticeSeq grows with each one so
	// clients show it exactly once.
	Notice    string `json:"notice"`
	NoticeSeq uint64 `json:"notice_seq"`
}

func initialState() State {
	return State{
		BTCOpen:         util.Placeholder,
		BTCCloseMA3:     util.Placeholder,
		BTCCurrent:      util.Placeholder,
		BTCVariation:    util.Placeholder,
		VIXOpen:         util.Placeholder,
		VIXCloseMA3:     util.Placeholder,
		VIXCurrentPrice: util.Placeholder,
		LastUpdated:     util.Placeholder,
		PredictionDate:  util.Placeholder,
	}
}

// StateView keeps the dashboard in memory and fans every change out to
// subscribers. It is safe for concurrent use.
type StateView struct {
	mu     sync.RWMutex
	state  State
	subs   map[chan State]struct{}
	buffer int
}

// NewStateView creates a view whose subscriber channels hold buffer frames.
func NewStateView(buffer int) *StateView {
	if buffer <= 0 {
		buffer = 16
	}
	return &StateView{
		state:  initialState(),
		subs:   make(map[chan State]struct{}),
		buffer: buffer,
	}
}

// Snapshot returns a copy of the current frame.
func (v *StateView) Snapshot() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Subscribe returns a channel receiving every new frame. Frames are dropped
// for a subscriber whose buffer is full.
func (v *StateView) Subscribe() <-chan State {
	ch := make(chan State, v.buffer)
	v.mu.Lock()
	v.subs[ch] = struct{}{}
	v.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery and closes ch.
func (v *StateView) Unsubscribe(ch <-chan State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for c := range v.subs {
		if c == ch {
			delete(v.subs, c)
			close(c)
			return
		}
	}
}

func (v *StateView) update(fn func(s *State)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn(&v.state)
	v.state.Version++
	frame := v.state
	for ch := range v.subs {
		select {
		case ch <- frame:
		default:
		}
	}
}

func (v *StateView) SetCurrentDate(text string) {
	v.update(func(s *State) { s.CurrentDate = text })
}

func (v *StateView) SetBTCOpen(text string) {
	v.update(func(s *State) { s.BTCOpen = text })
}

func (v *StateView) SetBTCCloseMA3(text string) {
	v.update(func(s *State) { s.BTCCloseMA3 = text })
}

func (v *StateView) SetBTCCurrent(text string) {
	v.update(func(s *State) { s.BTCCurrent = text })
}

// SetBTCVariation stores one trend; the page applies it to both the label
// and the card and removes the opposite class.
func (v *StateView) SetBTCVariation(text string, trend models.Trend) {
	v.update(func(s *State) {
		s.BTCVariation = text
		s.BTCTrend = trend
	})
}

func (v *StateView) SetVIXOpen(text string) {
	v.update(func(s *State) { s.VIXOpen = text })
}

func (v *StateView) SetVIXCloseMA3(text string) {
	v.update(func(s *State) { s.VIXCloseMA3 = text })
}

func (v *StateView) SetVIXCurrentPrice(text string) {
	v.update(func(s *State) { s.VIXCurrentPrice = text })
}

func (v *StateView) ShowMarketData() {
	v.update(func(s *State) { s.MarketVisible = true })
}

func (v *StateView) SetLastUpdated(text string) {
	v.update(func(s *State) { s.LastUpdated = text })
}

func (v *StateView) SetPredictionDate(text string) {
	v.update(func(s *State) { s.PredictionDate = text })
}

func (v *StateView) SetRecommendation(label, style string) {
	v.update(func(s *State) {
		s.Recommendation = label
		s.RecommendationStyle = style
	})
}

func (v *StateView) ShowPrediction() {
	v.update(func(s *State) { s.PredictionVisible = true })
}

func (v *StateView) ShowError(message string) {
	v.update(func(s *State) {
		s.Error = message
		s.ErrorVisible = true
	})
}

func (v *StateView) HideError() {
	v.update(func(s *State) { s.ErrorVisible = false })
}

func (v *StateView) ShowLoading() {
	v.update(func(s *State) { s.Loading = true })
}

func (v *StateView) HideLoading() {
	v.update(func(s *State) { s.Loading = false })
}

func (v *StateView) Acknowledge(message string) {
	v.update(func(s *State) {
		s.Notice = message
		s.NoticeSeq++
	})
}
