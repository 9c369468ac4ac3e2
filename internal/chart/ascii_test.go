package chart

import (
	"strings"
	"testing"
	"time"

	"InvestBot/internal/model"
)

func window(n int, withSMA bool) model.DisplayWindow {
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	win := model.DisplayWindow{}
	for i := 0; i < n; i++ {
		ts := start.AddDate(0, 0, i)
		c := 30 + float64(i%5)
		win.Bars = append(win.Bars, model.OHLCV{Time: ts, Close: c})
		win.SMA = append(win.SMA, model.SMAPoint{Time: ts, Value: 31, Valid: withSMA})
	}
	return win
}

func TestASCIIRenderer_Render(t *testing.T) {
	var b strings.Builder
	r := NewASCIIRenderer(8, false)
	if err := r.Render(&b, "PETR4.SA", 20, window(30, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	for _, s := range []string{"PETR4.SA close and 20-day SMA", "2025-02-03", "2025-03-04", "Close", "SMA 20", "R$ 30.00 - 34.00"} {
		if !strings.Contains(out, s) {
			t.Errorf("chart missing %q:\n%s", s, out)
		}
	}
}

func TestASCIIRenderer_UndefinedAverage(t *testing.T) {
	var b strings.Builder
	r := NewASCIIRenderer(6, true)
	if err := r.Render(&b, "ITUB4.SA", 20, window(10, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() == 0 {
		t.Error("expected a chart even without averages")
	}
}

func TestASCIIRenderer_Empty(t *testing.T) {
	var b strings.Builder
	if err := NewASCIIRenderer(6, false).Render(&b, "X.SA", 20, model.DisplayWindow{}); err == nil {
		t.Error("expected error for empty window")
	}
}
