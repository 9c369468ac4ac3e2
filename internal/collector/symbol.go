package collector

import "strings"

// ExchangeSuffix qualifies tickers listed on B3.
const ExchangeSuffix = ".SA"

// NormalizeTicker uppercases a user-entered ticker and appends the exchange
// suffix when missing. Nothing else is validated.
func NormalizeTicker(input string) string {
	symbol := strings.ToUpper(strings.TrimSpace(input))
	if !strings.HasSuffix(symbol, ExchangeSuffix) {
		symbol += ExchangeSuffix
	}
	return symbol
}
