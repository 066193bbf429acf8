package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	_ "walkaway/docs"
	"walkaway/internal/config"
	"walkaway/internal/handlers"
	"walkaway/internal/middleware"
	"walkaway/internal/pdf"
	"walkaway/internal/repositories"
	"walkaway/internal/routes"
	"walkaway/internal/services"
	"walkaway/internal/telemetry"
	"walkaway/internal/utils"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// App is the wired service.
type App struct {
	Config     *config.Config
	Log        *logrus.Logger
	Dispatcher *services.LeadDispatcher
	Router     *gin.Engine

	closers []func() error
}

func NewLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// New builds the dispatcher and router. A broken ledger configuration does not
// stop the process: the dispatcher is built without a ledger and every
// submission answers with a configuration error.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	ledger, closeLedger, err := BuildLedger(ctx, cfg.Ledger)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Ledger.Driver).Error("[ledger] not configured; lead submissions will fail")
	}
	if closeLedger != nil {
		a.closers = append(a.closers, closeLedger)
	}

	notifiers := BuildNotifiers(cfg, log)
	a.Dispatcher = services.NewLeadDispatcher(ledger, notifiers, log).
		WithTimeouts(cfg.Ledger.Timeout, cfg.Notify.Timeout)

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigin))

	routes.SetupRoutes(
		router,
		handlers.NewLeadHandler(a.Dispatcher, log),
		handlers.NewEstimateHandler(),
	)
	a.Router = router
	return a, nil
}

// BuildLedger returns a nil ledger with an error when the configuration cannot
// produce one.
func BuildLedger(ctx context.Context, cfg config.LedgerConfig) (services.Ledger, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	switch cfg.Driver {
	case config.LedgerSheets:
		creds, err := repositories.SheetsCredentials(cfg.ServiceAccountJSON, cfg.ServiceAccountFile)
		if err != nil {
			return nil, nil, err
		}
		l, err := repositories.NewSheetsLedger(ctx, cfg.SheetID, cfg.SheetRange, creds)
		if err != nil {
			return nil, nil, err
		}
		return l, nil, nil
	default:
		l, err := repositories.NewSQLLedger(ctx, cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return l, l.Close, nil
	}
}

// BuildNotifiers returns every channel. Unconfigured channels are still
// returned and report themselves as skipped on each lead.
func BuildNotifiers(cfg *config.Config, log *logrus.Logger) []services.Notifier {
	email := services.NewEmailNotifier(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.NotifyEmail,
	).WithLogger(log)
	if cfg.Email.AttachPDF {
		email.WithLeadSheet(pdf.NewLeadSheetGenerator(cfg.Email.FontPath))
	}

	smsClient := utils.NewSMSClient(
		cfg.SMS.AccountSID,
		cfg.SMS.AuthToken,
		cfg.SMS.FromNumber,
		utils.WithSMSBaseURL(cfg.SMS.BaseURL),
		utils.WithSMSDryRun(cfg.SMS.DryRun),
		utils.WithSMSLogger(log),
	)
	smsClient.HTTPClient.Timeout = cfg.Notify.Timeout

	tg, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, &http.Client{Timeout: cfg.Notify.Timeout})
	if err != nil {
		log.WithError(err).Warn("[tg] disabled")
	}

	return []services.Notifier{
		email,
		services.NewSMSNotifier(smsClient),
		tg,
	}
}

// Serve runs the HTTP server until ctx is cancelled, then drains requests and
// in-flight notifications.
func (a *App) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.WithField("addr", addr).Info("[http] listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Log.WithError(err).Warn("[http] shutdown")
	}

	drained := make(chan struct{})
	go func() {
		a.Dispatcher.Drain()
		close(drained)
	}()
	select {
	case <-drained:
	case <-shutdownCtx.Done():
		a.Log.Warn("[notify] shutdown before all notifications finished")
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Run wires cfg, sets up tracing and serves until ctx ends.
func Run(ctx context.Context, cfg *config.Config) error {
	log := NewLogger(cfg.Log)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.WithError(err).Warn("[otel] tracing disabled")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("[otel] shutdown")
		}
	}()

	a, err := New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Warn("[app] close")
		}
	}()
	return a.Serve(ctx, cfg.Server.Addr)
}
