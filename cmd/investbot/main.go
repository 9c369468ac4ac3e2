package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"InvestBot/internal/advisor"
	"InvestBot/internal/chart"
	"InvestBot/internal/collector"
	"InvestBot/internal/config"
	"InvestBot/internal/notifier"
	"InvestBot/internal/recorder"
	"InvestBot/internal/scheduler"
	"InvestBot/internal/shell"

	"github.com/mattn/go-isatty"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] InvestBot starting...")

	// .env first so its values feed the overrides in config.Load
	if err := config.LoadEnv(os.Getenv("ENV_FILE")); err != nil {
		log.Printf("[WARN] %v", err)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	if !cfg.Credentials.Complete() {
		log.Println("[WARN] sender credentials not set, e-mail alerts will fail")
	}

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Analysis.LookbackBars)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	mailer := notifier.NewMailer(cfg.Mail.Host, cfg.Mail.Port, &cfg.Credentials)
	adv := advisor.New(col, mailer, rec, cfg.Analysis.SMAWindow, cfg.Analysis.DisplayWindow)

	if cfg.Schedule.AlertCron != "" {
		sched := scheduler.NewScheduler(adv)
		if err := sched.RegisterAlert(cfg.Schedule.AlertCron, cfg.Schedule.Symbol, cfg.Schedule.Recipient); err != nil {
			log.Fatalf("[FATAL] register alert: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	color := isatty.IsTerminal(os.Stdout.Fd())
	renderer := chart.NewASCIIRenderer(cfg.Shell.ChartHeight, color)
	sh := shell.New(adv, renderer, cfg.Shell.DefaultTicker, cfg.Shell.DefaultRecipient, os.Stdin, os.Stdout)

	done := make(chan error, 1)
	go func() { done <- sh.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-done:
		if err != nil {
			log.Printf("[ERROR] read input: %v", err)
		}
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	}
	log.Println("[INFO] InvestBot stopped")
}
