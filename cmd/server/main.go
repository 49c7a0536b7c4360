package main

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/breakdown"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/config"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/handlers"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/middleware"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/notify"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open breakdown store")
	}

	notifier := openNotifier(cfg)
	defer notifier.Close()

	service := breakdown.NewService(st, notifier)
	handler := handlers.NewBreakdownHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handler.Health)
	mux.HandleFunc("/api/breakdowns", handler.Collection)
	mux.HandleFunc("/api/breakdowns/", handler.Item)
	mux.HandleFunc("/api/breakdowns/export.csv", handler.ExportCSV)
	mux.HandleFunc("/api/breakdowns/export.xlsx", handler.ExportXLSX)

	rateLimiter := middleware.NewRateLimitMiddleware()
	chain := middleware.RequestLogger(
		middleware.Operator(
			rateLimiter.RateLimit(120, 60)(mux),
		),
	)

	log.WithField("port", cfg.Port).Info("Breakdown assist server listening")
	if err := http.ListenAndServe(":"+cfg.Port, chain); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// openStore picks the Google Sheet when configured, the local workbook
// otherwise.
func openStore(cfg config.Config) (store.Store, error) {
	if cfg.SheetID != "" {
		log.WithFields(log.Fields{"sheet_id": cfg.SheetID, "worksheet": cfg.SheetName}).
			Info("Using Google Sheets store")
		return store.NewSheetsStore(context.Background(), cfg.SheetID, cfg.SheetName, cfg.CredentialsFile)
	}
	log.WithField("path", cfg.WorkbookPath).Info("Using local workbook store")
	return store.NewWorkbookStore(cfg.WorkbookPath, cfg.SheetName)
}

// openNotifier connects to MQTT when a broker is configured; events are
// otherwise discarded.
func openNotifier(cfg config.Config) notify.Notifier {
	if cfg.MQTTBrokerURL == "" {
		return notify.NoopNotifier{}
	}
	notifier, err := notify.NewMQTTNotifier(cfg.MQTTBrokerURL, "breakdown-assist-server", cfg.MQTTTopicPrefix)
	if err != nil {
		log.WithError(err).Warn("MQTT broker unreachable, record events disabled")
		return notify.NoopNotifier{}
	}
	log.WithField("broker", cfg.MQTTBrokerURL).Info("Publishing record events over MQTT")
	return notifier
}
