package recorder

import (
	"time"

	"InvestBot/internal/model"
)

// DispatchEvent is one alert delivery attempt.
type DispatchEvent struct {
	At          time.Time
	Trigger     model.TriggerType
	Symbol      string
	Recipient   string
	Signal      model.Signal
	LatestClose float64
	LatestSMA   float64
	OK          bool
	Error       string
}

// Recorder keeps an operator journal of delivery attempts.
type Recorder interface {
	RecordDispatch(evt *DispatchEvent) error
	Close() error
}
