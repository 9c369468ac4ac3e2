// Package shell is the interactive terminal front end: a numbered menu over a single session.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"InvestBot/internal/advisor"
	"InvestBot/internal/chart"
	"InvestBot/internal/collector"
	"InvestBot/internal/model"
	"InvestBot/internal/notifier"
)

const menu = `
1. Fetch data
2. Show chart
3. Send email alert
4. Exit
> `

// Session holds the most recent successful fetch. A failed fetch leaves it untouched.
type Session struct {
	Symbol string
	Result *advisor.Result
}

// Loaded reports whether a series has been fetched.
func (s Session) Loaded() bool { return s.Result != nil }

// Shell reads menu choices from In and writes status and charts to Out.
type Shell struct {
	Advisor          *advisor.Advisor
	Chart            chart.Renderer
	DefaultTicker    string
	DefaultRecipient string

	in      *bufio.Scanner
	out     io.Writer
	session Session
}

// New creates a Shell reading from in and writing to out.
func New(adv *advisor.Advisor, r chart.Renderer, defaultTicker, defaultRecipient string, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		Advisor:          adv,
		Chart:            r,
		DefaultTicker:    defaultTicker,
		DefaultRecipient: defaultRecipient,
		in:               bufio.NewScanner(in),
		out:              out,
	}
}

// Session returns the current session state.
func (s *Shell) Session() Session { return s.session }

// Run loops until the user exits or input ends. Action failures never end the loop.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "InvestBot: moving average alerts for B3 stocks")
	for {
		fmt.Fprint(s.out, menu)
		choice, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		switch choice {
		case "1":
			s.fetch()
		case "2":
			s.showChart()
		case "3":
			s.send()
		case "4", "q", "exit":
			s.info("Bye.")
			return nil
		case "":
		default:
			s.warning(fmt.Sprintf("Unknown option %q.", choice))
		}
	}
}

func (s *Shell) fetch() {
	raw, ok := s.prompt("Enter the stock ticker", s.DefaultTicker)
	if !ok {
		return
	}
	symbol := collector.NormalizeTicker(raw)
	fmt.Fprintf(s.out, "You entered: %s\n", symbol)
	s.info(fmt.Sprintf("Fetching data for %s...", symbol))

	res, err := s.Advisor.Analyze(symbol)
	if errors.Is(err, collector.ErrNoData) {
		s.warning(fmt.Sprintf("No data found for %s. Check the ticker and try again.", symbol))
		return
	}
	if err != nil {
		s.fail(fmt.Sprintf("Error fetching data for %s.", symbol))
		return
	}

	s.session = Session{Symbol: symbol, Result: res}
	s.success(fmt.Sprintf("Data for %s loaded (%d days).", symbol, res.Series.Len()))
	fmt.Fprint(s.out, notifier.FormatLatest(res.Analysis))
	s.renderChart()
	if res.Analysis.Signal.Actionable() {
		s.info(notifier.FormatAnalysis(res.Analysis))
	} else {
		s.warning(notifier.FormatAnalysis(res.Analysis))
	}
}

func (s *Shell) showChart() {
	if !s.session.Loaded() {
		s.warning("Fetch data first.")
		return
	}
	s.renderChart()
}

func (s *Shell) renderChart() {
	r := s.session.Result
	if err := s.Chart.Render(s.out, s.session.Symbol, r.Analysis.Window, r.Window); err != nil {
		log.Printf("[ERROR] render chart: %v", err)
		s.fail("Could not draw the chart.")
	}
}

func (s *Shell) send() {
	if !s.session.Loaded() {
		s.warning("Fetch data first.")
		return
	}
	analysis := s.session.Result.Analysis
	if !analysis.Signal.Actionable() {
		s.warning(fmt.Sprintf("Not enough data for the %d-day moving average; no alert to send.", analysis.Window))
		return
	}

	recipient, ok := s.prompt("Recipient e-mail", s.DefaultRecipient)
	if !ok {
		return
	}
	if !notifier.ValidRecipient(recipient) {
		s.fail("Please enter a valid e-mail address.")
		return
	}

	s.info("Sending email...")
	res, err := s.Advisor.Notify(recipient, analysis, model.TriggerManual)
	switch {
	case err != nil:
		log.Printf("[ERROR] notify: %v", err)
		s.fail("Could not build the alert.")
	case res.OK:
		s.success(fmt.Sprintf("Alert sent to %s.", recipient))
	default:
		s.fail("Failed to send the alert. Check the sender credentials and try again.")
	}
}

// prompt shows the default and returns it on an empty answer.
func (s *Shell) prompt(label, def string) (string, bool) {
	fmt.Fprintf(s.out, "%s [%s]: ", label, def)
	line, ok := s.readLine()
	if !ok {
		return "", false
	}
	if line == "" {
		return def, true
	}
	return line, true
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) info(msg string)    { fmt.Fprintf(s.out, "ℹ️ %s\n", msg) }
func (s *Shell) success(msg string) { fmt.Fprintf(s.out, "✅ %s\n", msg) }
func (s *Shell) warning(msg string) { fmt.Fprintf(s.out, "⚠️ %s\n", msg) }
func (s *Shell) fail(msg string)    { fmt.Fprintf(s.out, "❌ %s\n", msg) }
