package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"

	"InvestBot/internal/calculator"
	"InvestBot/internal/model"
)

// Renderer draws a close/average chart for a display window.
type Renderer interface {
	Render(w io.Writer, symbol string, smaWindow int, win model.DisplayWindow) error
}

// ASCIIRenderer draws the chart as terminal line art.
type ASCIIRenderer struct {
	Height int
	Color  bool
}

// NewASCIIRenderer creates a renderer with the given plot height in rows.
func NewASCIIRenderer(height int, color bool) *ASCIIRenderer {
	return &ASCIIRenderer{Height: height, Color: color}
}

func (r *ASCIIRenderer) Render(w io.Writer, symbol string, smaWindow int, win model.DisplayWindow) error {
	if len(win.Bars) == 0 {
		return errors.New("nothing to chart")
	}
	closes := make([]float64, len(win.Bars))
	for i, b := range win.Bars {
		closes[i] = b.Close
	}
	// undefined averages are left as gaps
	avg := make([]float64, len(win.Bars))
	for i := range avg {
		avg[i] = math.NaN()
		if i < len(win.SMA) && win.SMA[i].Valid {
			avg[i] = win.SMA[i].Value
		}
	}

	first := win.Bars[0].Time.Format("2006-01-02")
	last := win.Bars[len(win.Bars)-1].Time.Format("2006-01-02")
	caption := fmt.Sprintf("%s close and %d-day SMA, %s to %s (last %d days)", symbol, smaWindow, first, last, len(win.Bars))
	if high, low, err := calculator.CloseRange(win.Bars); err == nil {
		caption += fmt.Sprintf(", range R$ %.2f - %.2f", low, high)
	}

	// legends index into the colors, so both are always set
	colors := []asciigraph.AnsiColor{asciigraph.Default, asciigraph.Default}
	if r.Color {
		colors = []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Orange}
	}
	plot := asciigraph.PlotMany([][]float64{closes, avg},
		asciigraph.Height(r.Height),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends("Close", fmt.Sprintf("SMA %d", smaWindow)),
	)
	_, err := fmt.Fprintln(w, plot)
	return err
}
