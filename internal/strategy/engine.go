package strategy

import (
	"log"

	"InvestBot/internal/calculator"
	"InvestBot/internal/model"
)

const (
	// DefaultSMAWindow is the moving average length used when none is given.
	DefaultSMAWindow = 20
	// DefaultDisplayWindow is how many trailing bars are charted.
	DefaultDisplayWindow = 30
)

// ComputeSignal derives the moving average series and the price-vs-average signal
// for a series sorted oldest first. Comparisons use full precision.
func ComputeSignal(series *model.PriceSeries, window int) *model.Analysis {
	if window <= 0 {
		window = DefaultSMAWindow
	}
	a := &model.Analysis{Window: window, Signal: model.SignalInsufficientData}
	if series == nil {
		return a
	}
	a.Symbol = series.Symbol
	if len(series.Bars) == 0 {
		return a
	}

	values, err := calculator.SMASeries(series.Closes(), window)
	if err != nil {
		log.Printf("[WARN] SMA calculation failed for %s: %v", series.Symbol, err)
		return a
	}
	a.SMA = make([]model.SMAPoint, len(values))
	for i, v := range values {
		a.SMA[i] = model.SMAPoint{Time: series.Bars[i].Time}
		if i >= window-1 {
			a.SMA[i].Value = v
			a.SMA[i].Valid = true
		}
	}

	last := len(series.Bars) - 1
	a.LatestClose = series.Bars[last].Close
	if a.SMA[last].Valid {
		a.LatestSMA = a.SMA[last].Value
		a.HasSMA = true
	}
	a.Signal = classify(a.LatestClose, a.LatestSMA, a.HasSMA)
	return a
}

// classify applies the ordered comparison; ties fall through to AT_AVERAGE.
func classify(close, sma float64, hasSMA bool) model.Signal {
	switch {
	case !hasSMA:
		return model.SignalInsufficientData
	case close < sma:
		return model.SignalBelowAverage
	case close > sma:
		return model.SignalAboveAverage
	default:
		return model.SignalAtAverage
	}
}
