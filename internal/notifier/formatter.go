package notifier

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"InvestBot/internal/model"
)

// ErrInsufficientData is returned when asked to describe a signal that has no average.
var ErrInsufficientData = errors.New("not enough history for a moving average")

// Money renders a price with two decimals. Only presentation code rounds.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// AlertSubject builds the e-mail subject for a symbol.
func AlertSubject(symbol string) string {
	return fmt.Sprintf("Alert: %s - Buy Indication!", symbol)
}

// ValidRecipient is the only address check made before dispatching.
func ValidRecipient(addr string) bool {
	addr = strings.TrimSpace(addr)
	return addr != "" && strings.Contains(addr, "@")
}

// SignalPhrase is the one-line verdict placed in the alert body.
func SignalPhrase(sig model.Signal, window int) (string, error) {
	switch sig {
	case model.SignalBelowAverage:
		return fmt.Sprintf("✅ Price below the average of the last %d days", window), nil
	case model.SignalAboveAverage:
		return fmt.Sprintf("❌ Price above the average of the last %d days", window), nil
	case model.SignalAtAverage:
		return fmt.Sprintf("⚠️ Price stable over the last %d days", window), nil
	case model.SignalInsufficientData:
		return "", ErrInsufficientData
	default:
		return "", fmt.Errorf("unknown signal %q", sig)
	}
}

var alertBody = template.Must(template.New("alert").Parse(`<html>
<body>
<p>Hello!</p>
<p>Here is a quick summary for {{.Symbol}}</p>
<p>Latest close: R$ {{.Close}}<br>
Moving average ({{.Window}} days): R$ {{.SMA}}
</p>
<p>{{.Phrase}}</p>
</body>
</html>
`))

// FormatAlertBody renders the HTML e-mail body for an analysis.
func FormatAlertBody(a *model.Analysis) (string, error) {
	if a == nil || !a.HasSMA {
		return "", ErrInsufficientData
	}
	phrase, err := SignalPhrase(a.Signal, a.Window)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = alertBody.Execute(&b, struct {
		Symbol, Close, SMA, Phrase string
		Window                     int
	}{
		Symbol: a.Symbol,
		Close:  Money(a.LatestClose),
		SMA:    Money(a.LatestSMA),
		Phrase: phrase,
		Window: a.Window,
	})
	if err != nil {
		return "", fmt.Errorf("render alert body: %w", err)
	}
	return b.String(), nil
}

// BuildAlert assembles the notification for an analysis.
func BuildAlert(recipient string, a *model.Analysis) (model.NotificationRequest, error) {
	body, err := FormatAlertBody(a)
	if err != nil {
		return model.NotificationRequest{}, err
	}
	return model.NotificationRequest{
		Recipient: strings.TrimSpace(recipient),
		Subject:   AlertSubject(a.Symbol),
		Body:      body,
		Signal:    a.Signal,
	}, nil
}

// FormatLatest lists the latest close and moving average for the terminal.
func FormatLatest(a *model.Analysis) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Latest close: R$ %s\n", Money(a.LatestClose)))
	if a.HasSMA {
		b.WriteString(fmt.Sprintf("Latest %d-day SMA: R$ %s\n", a.Window, Money(a.LatestSMA)))
	} else {
		b.WriteString(fmt.Sprintf("Latest %d-day SMA: n/a\n", a.Window))
	}
	return b.String()
}

// FormatAnalysis explains the signal to the user.
func FormatAnalysis(a *model.Analysis) string {
	switch a.Signal {
	case model.SignalBelowAverage:
		return fmt.Sprintf("Buy alert: the current price (R$ %s) is below the %d-day moving average (R$ %s). "+
			"This may indicate a buying opportunity, depending on your strategy!",
			Money(a.LatestClose), a.Window, Money(a.LatestSMA))
	case model.SignalAboveAverage:
		return fmt.Sprintf("Price above average: the current price (R$ %s) is ABOVE the %d-day moving average (R$ %s). "+
			"Monitor it or consider other analyses.",
			Money(a.LatestClose), a.Window, Money(a.LatestSMA))
	case model.SignalAtAverage:
		return fmt.Sprintf("Current price very close to the %d-day moving average. No clear indication.", a.Window)
	default:
		return fmt.Sprintf("Not enough data to calculate the %d-day moving average. At least %d days of data are required.",
			a.Window, a.Window)
	}
}
