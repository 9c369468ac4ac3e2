package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the bars fetched for one symbol, oldest first.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars in the series. A nil series has none.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes extracts the close prices in bar order.
func (s *PriceSeries) Closes() []float64 {
	if s == nil {
		return nil
	}
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// SMAPoint is one value of a moving average aligned to a bar.
// Valid is false while the window is not yet filled.
type SMAPoint struct {
	Time  time.Time
	Value float64
	Valid bool
}

// DisplayWindow is the trimmed tail of a series used for charts and summaries.
type DisplayWindow struct {
	Bars []OHLCV
	SMA  []SMAPoint
}
