package calculator

import (
	"errors"
	"math"

	"InvestBot/internal/model"
)

// CloseRange returns the highest and lowest close among the given bars.
func CloseRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.Close > high {
			high = b.Close
		}
		if b.Close < low {
			low = b.Close
		}
	}
	return high, low, nil
}
