package calculator

import (
	"errors"
	"math"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	return windowMean(prices[len(prices)-period:]), nil
}

// SMASeries returns the trailing simple moving average for every index of prices.
// Indices with fewer than period prices up to and including them are NaN.
func SMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(prices))
	for i := range prices {
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = windowMean(prices[i-period+1 : i+1])
	}
	return out, nil
}

// windowMean uses an incremental mean so a window of equal prices averages to exactly that price.
func windowMean(window []float64) float64 {
	mean := 0.0
	for i, p := range window {
		mean += (p - mean) / float64(i+1)
	}
	return mean
}
