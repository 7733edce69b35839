package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/opsdesk/ticketera/internal/auth"
	"github.com/opsdesk/ticketera/internal/config"
	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/event"
	"github.com/opsdesk/ticketera/internal/handler"
	"github.com/opsdesk/ticketera/internal/notify"
	"github.com/opsdesk/ticketera/internal/router"
	"github.com/opsdesk/ticketera/internal/service"
	"github.com/opsdesk/ticketera/internal/session"
	"github.com/opsdesk/ticketera/internal/sheet"
)

// API wires the whole service together for the api command.
type API struct {
	cfg     *config.Config
	httpSrv *http.Server
	events  *event.Producer
}

func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	secrets, err := config.LoadSecrets(cfg.SecretsFile)
	if err != nil {
		return nil, fmt.Errorf("secrets: %w", err)
	}
	authenticator, err := auth.New(secrets.Users)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	src, err := newRowSource(cfg, secrets)
	if err != nil {
		return nil, err
	}

	gateway := sheet.NewGateway(src, cfg.HistoryLimit)
	events := event.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicTicket)
	notifier := notify.NewClient(cfg.NotifyURL)
	tickets := service.NewTicketService(gateway, events, notifier)
	sessions := session.NewStore()
	h := handler.New(authenticator, sessions, tickets)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, httpSrv: httpSrv, events: events}, nil
}

// NewRowSource builds the configured table backend. Exported for the
// init-sheet and export commands, which need the gateway without the server.
func NewRowSource(cfg *config.Config) (sheet.RowSource, error) {
	secrets, err := config.LoadSecrets(cfg.SecretsFile)
	if err != nil {
		return nil, fmt.Errorf("secrets: %w", err)
	}
	return newRowSource(cfg, secrets)
}

func newRowSource(cfg *config.Config, secrets *config.Secrets) (sheet.RowSource, error) {
	switch cfg.SheetBackend {
	case config.BackendGoogle:
		if len(secrets.GoogleCreds) == 0 {
			return nil, &errs.ConfigError{Reason: "secrets file has no [google_sheets] credentials"}
		}
		return sheet.NewGoogleSheet(secrets.GoogleCreds, cfg.SpreadsheetID), nil
	case config.BackendXLSX:
		return sheet.NewWorkbook(cfg.WorkbookPath), nil
	default:
		return nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown SHEET_BACKEND %q", cfg.SheetBackend)}
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.httpSrv.Addr)
	log.Printf("  Swagger UI:    %s/swagger", base)
	log.Printf("  Health:        %s/health", base)
	log.Printf("  API v1:        %s/api/v1/", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.events.Close(); err != nil {
		log.Printf("event: close producer: %v", err)
	}
	return nil
}
