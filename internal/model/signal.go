package model

// Signal classifies the latest close against its moving average.
type Signal string

const (
	SignalBelowAverage     Signal = "BELOW_AVERAGE"
	SignalAboveAverage     Signal = "ABOVE_AVERAGE"
	SignalAtAverage        Signal = "AT_AVERAGE"
	SignalInsufficientData Signal = "INSUFFICIENT_DATA"
)

// Actionable reports whether the signal carries a price-vs-average comparison.
func (s Signal) Actionable() bool {
	switch s {
	case SignalBelowAverage, SignalAboveAverage, SignalAtAverage:
		return true
	default:
		return false
	}
}

// TriggerType indicates what initiated a notification.
type TriggerType string

const (
	TriggerManual    TriggerType = "MANUAL"
	TriggerScheduled TriggerType = "SCHEDULED"
)

// Analysis is the output of the signal engine for one series.
type Analysis struct {
	Symbol      string
	Window      int
	LatestClose float64
	LatestSMA   float64 // meaningless unless HasSMA
	HasSMA      bool
	Signal      Signal
	SMA         []SMAPoint
}

// NotificationRequest is a single alert about to be dispatched.
type NotificationRequest struct {
	Recipient string
	Subject   string
	Body      string
	Signal    Signal
}

// DispatchResult reports the outcome of a notification attempt.
type DispatchResult struct {
	OK  bool
	Err error
}
