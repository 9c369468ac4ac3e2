package strategy

import "InvestBot/internal/model"

// DisplayWindow trims the series and its moving average to the last size bars.
// The average itself is always computed over the full series.
func DisplayWindow(series *model.PriceSeries, analysis *model.Analysis, size int) model.DisplayWindow {
	if size <= 0 {
		size = DefaultDisplayWindow
	}
	n := series.Len()
	if n == 0 {
		return model.DisplayWindow{}
	}
	start := n - size
	if start < 0 {
		start = 0
	}

	win := model.DisplayWindow{Bars: series.Bars[start:n]}
	if analysis != nil && len(analysis.SMA) == n {
		win.SMA = analysis.SMA[start:n]
	} else {
		// no aligned average: keep the window shape with undefined points
		win.SMA = make([]model.SMAPoint, n-start)
		for i, b := range win.Bars {
			win.SMA[i] = model.SMAPoint{Time: b.Time}
		}
	}
	return win
}

// RequiredLookback is the number of bars a fetch must return so every
// displayed bar has a defined moving average.
func RequiredLookback(displaySize, smaWindow int) int {
	return displaySize + smaWindow - 1
}
