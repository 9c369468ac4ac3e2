// Package advisor ties fetching, signal computation and alert dispatch together.
// Every step holds the same lock so a manual action and a scheduled one never interleave.
package advisor

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"InvestBot/internal/collector"
	"InvestBot/internal/model"
	"InvestBot/internal/notifier"
	"InvestBot/internal/recorder"
	"InvestBot/internal/strategy"
)

// ErrInvalidRecipient is returned before any network call when the address has no '@'.
var ErrInvalidRecipient = errors.New("invalid recipient address")

// Dispatcher delivers one notification.
type Dispatcher interface {
	Dispatch(req model.NotificationRequest) model.DispatchResult
}

// Result is one fetch and its derived analysis.
type Result struct {
	Series   *model.PriceSeries
	Analysis *model.Analysis
	Window   model.DisplayWindow
}

// Advisor runs the fetch -> analyze -> notify workflow for one ticker at a time.
type Advisor struct {
	mu          sync.Mutex
	Collector   *collector.Collector
	Dispatcher  Dispatcher
	Recorder    recorder.Recorder
	SMAWindow   int
	DisplaySize int
}

// New creates an Advisor. A nil recorder disables the journal.
func New(col *collector.Collector, d Dispatcher, rec recorder.Recorder, smaWindow, displaySize int) *Advisor {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Advisor{
		Collector:   col,
		Dispatcher:  d,
		Recorder:    rec,
		SMAWindow:   smaWindow,
		DisplaySize: displaySize,
	}
}

// Analyze normalizes the ticker, fetches its history once and computes the signal.
func (a *Advisor) Analyze(ticker string) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	symbol := collector.NormalizeTicker(ticker)
	series, err := a.Collector.Fetch(symbol)
	if err != nil {
		log.Printf("[ERROR] fetch %s: %v", symbol, err)
		return nil, err
	}
	return a.analyzeSeries(series), nil
}

// AnalyzeSeries computes the signal for an already fetched series.
func (a *Advisor) AnalyzeSeries(series *model.PriceSeries) *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.analyzeSeries(series)
}

func (a *Advisor) analyzeSeries(series *model.PriceSeries) *Result {
	analysis := strategy.ComputeSignal(series, a.SMAWindow)
	log.Printf("[INFO] %s: %d bars, close=%.4f sma=%.4f signal=%s",
		series.Symbol, series.Len(), analysis.LatestClose, analysis.LatestSMA, analysis.Signal)
	return &Result{
		Series:   series,
		Analysis: analysis,
		Window:   strategy.DisplayWindow(series, analysis, a.DisplaySize),
	}
}

// Notify e-mails the analysis to recipient. Validation errors are returned as errors
// with no dispatch attempted; a dispatch attempt always yields a DispatchResult.
func (a *Advisor) Notify(recipient string, analysis *model.Analysis, trigger model.TriggerType) (model.DispatchResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !notifier.ValidRecipient(recipient) {
		return model.DispatchResult{}, fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}
	if analysis == nil || !analysis.Signal.Actionable() {
		return model.DispatchResult{}, notifier.ErrInsufficientData
	}
	req, err := notifier.BuildAlert(recipient, analysis)
	if err != nil {
		return model.DispatchResult{}, err
	}

	res := a.Dispatcher.Dispatch(req)

	evt := &recorder.DispatchEvent{
		At:          time.Now(),
		Trigger:     trigger,
		Symbol:      analysis.Symbol,
		Recipient:   req.Recipient,
		Signal:      analysis.Signal,
		LatestClose: analysis.LatestClose,
		LatestSMA:   analysis.LatestSMA,
		OK:          res.OK,
	}
	if res.Err != nil {
		evt.Error = res.Err.Error()
	}
	if err := a.Recorder.RecordDispatch(evt); err != nil {
		log.Printf("[ERROR] record dispatch: %v", err)
	}
	return res, nil
}
