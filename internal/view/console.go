package view

import (
	"fmt"
	"io"
	"sync"

	"MarketDash/internal/domain/models"
)

// ConsoleView prints each region update as a "region: value" line.
type ConsoleView struct {
	mu sync.Mutex
	w  io.Writer
	// Verbose also prints loading and banner toggles.
	verbose bool
}

// NewConsoleView writes to w.
func NewConsoleView(w io.Writer, verbose bool) *ConsoleView {
	return &ConsoleView{w: w, verbose: verbose}
}

func (c *ConsoleView) line(region, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "%-18s %s\n", region+":", value)
}

func (c *ConsoleView) toggle(region, value string) {
	if c.verbose {
		c.line(region, value)
	}
}

func (c *ConsoleView) SetCurrentDate(text string) { c.line("date", text) }
func (c *ConsoleView) SetBTCOpen(text string)     { c.line("btc open", text) }
func (c *ConsoleView) SetBTCCloseMA3(text string) { c.line("btc close ma3", text) }
func (c *ConsoleView) SetBTCCurrent(text string)  { c.line("btc current", text) }

func (c *ConsoleView) SetBTCVariation(text string, trend models.Trend) {
	c.line("btc variation", fmt.Sprintf("%s (%s)", text, trend))
}

func (c *ConsoleView) SetVIXOpen(text string)         { c.line("vix open", text) }
func (c *ConsoleView) SetVIXCloseMA3(text string)     { c.line("vix close ma3", text) }
func (c *ConsoleView) SetVIXCurrentPrice(text string) { c.line("vix current", text) }
func (c *ConsoleView) ShowMarketData()                { c.toggle("market panel", "shown") }
func (c *ConsoleView) SetLastUpdated(text string)     { c.line("last updated", text) }
func (c *ConsoleView) SetPredictionDate(text string)  { c.line("prediction date", text) }

func (c *ConsoleView) SetRecommendation(label, style string) {
	c.line("recommendation", fmt.Sprintf("%s [%s]", label, style))
}

func (c *ConsoleView) ShowPrediction()            { c.toggle("prediction panel", "shown") }
func (c *ConsoleView) ShowError(message string)   { c.line("error", message) }
func (c *ConsoleView) HideError()                 { c.toggle("error", "cleared") }
func (c *ConsoleView) ShowLoading()               { c.toggle("loading", "on") }
func (c *ConsoleView) HideLoading()               { c.toggle("loading", "off") }
func (c *ConsoleView) Acknowledge(message string) { c.line("notice", message) }
