package collector

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"InvestBot/internal/model"
)

// ErrNoData is returned when a provider answers but has no bars for the symbol.
var ErrNoData = errors.New("no price data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
