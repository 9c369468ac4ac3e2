package scheduler

import (
	"errors"
	"fmt"
	"log"

	"InvestBot/internal/advisor"
	"InvestBot/internal/model"
	"InvestBot/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic alert for one configured ticker.
type Scheduler struct {
	Cron    *cron.Cron
	Advisor *advisor.Advisor

	symbol    string
	recipient string
}

// NewScheduler creates a new Scheduler.
func NewScheduler(adv *advisor.Advisor) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Advisor: adv,
	}
}

// RegisterAlert schedules the fetch -> analyze -> e-mail workflow for symbol.
func (s *Scheduler) RegisterAlert(spec, symbol, recipient string) error {
	s.symbol = symbol
	s.recipient = recipient
	if _, err := s.Cron.AddFunc(spec, func() { s.runAlert() }); err != nil {
		return fmt.Errorf("register alert task: %w", err)
	}
	log.Printf("[INFO] alert for %s -> %s scheduled at %q", symbol, recipient, spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the alert task immediately and reports whether an e-mail went out.
func (s *Scheduler) RunNow() bool {
	return s.runAlert()
}

func (s *Scheduler) runAlert() bool {
	log.Printf("[INFO] running scheduled alert for %s", s.symbol)
	res, err := s.Advisor.Analyze(s.symbol)
	if err != nil {
		log.Printf("[ERROR] scheduled fetch: %v", err)
		return false
	}

	out, err := s.Advisor.Notify(s.recipient, res.Analysis, model.TriggerScheduled)
	if errors.Is(err, notifier.ErrInsufficientData) {
		log.Printf("[WARN] %s: not enough history for SMA%d, alert skipped", res.Analysis.Symbol, res.Analysis.Window)
		return false
	}
	if err != nil {
		log.Printf("[ERROR] scheduled alert: %v", err)
		return false
	}
	if !out.OK {
		return false
	}
	log.Printf("[INFO] scheduled alert for %s sent to %s", res.Analysis.Symbol, s.recipient)
	return true
}
