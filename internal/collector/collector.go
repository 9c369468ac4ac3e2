package collector

import (
	"fmt"
	"log"
	"sort"
	"time"

	"InvestBot/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Err       error
	Calls     []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

// GenerateMockBars builds count gently rising daily bars ending today.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   today.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches a fixed number of daily bars for a symbol.
type Collector struct {
	Fetcher  Fetcher
	Lookback int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookback int) *Collector {
	return &Collector{Fetcher: fetcher, Lookback: lookback}
}

// Fetch makes a single attempt at loading the series for an already normalized symbol.
func (c *Collector) Fetch(symbol string) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	bars = cleanBars(bars)
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch daily bars: %w for %s", ErrNoData, symbol)
	}
	if len(bars) < c.Lookback {
		log.Printf("[WARN] %s: got %d daily bars, wanted %d", symbol, len(bars), c.Lookback)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// cleanBars orders bars oldest first, drops bars without a positive close and
// keeps only the last bar for a repeated timestamp, so times strictly increase.
func cleanBars(bars []model.OHLCV) []model.OHLCV {
	sorted := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if b.Close > 0 {
			sorted = append(sorted, b)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := sorted[:0]
	for _, b := range sorted {
		if n := len(out); n > 0 && !b.Time.After(out[n-1].Time) {
			out[n-1] = b // repeated day: the later quote is the fresher one
			continue
		}
		out = append(out, b)
	}
	return out
}
