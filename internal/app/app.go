package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/vastrakart/assistant/config"
	"github.com/vastrakart/assistant/internal/adapter/analytics"
	"github.com/vastrakart/assistant/internal/adapter/httphandler"
	"github.com/vastrakart/assistant/internal/adapter/kvstore"
	"github.com/vastrakart/assistant/internal/adapter/payment"
	"github.com/vastrakart/assistant/internal/core/catalog"
	"github.com/vastrakart/assistant/internal/core/port"
	"github.com/vastrakart/assistant/internal/core/service"
)

type closer interface {
	Close()
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	closers    []closer
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()

	storage := app.initStorage()
	events := app.initEventsProducer()
	cat := app.initCatalog()

	prefs := service.NewPreferenceService(storage)
	assistant := service.NewAssistant(cat, prefs, events)
	payments := service.NewPaymentService(payment.NewRazorpay(payment.Config{
		BaseURL:   cfg.Payment.BaseURL,
		KeyID:     cfg.Payment.KeyID,
		KeySecret: cfg.Payment.KeySecret,
		Timeout:   cfg.Payment.Timeout,
	}))

	app.initHTTPServer(assistant, payments)

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// initStorage tries Redis first. An unreachable Redis is not fatal:
// the preference store starts on the in-memory fallback and stays
// there for the process lifetime.
func (app *App) initStorage() port.KeyValueStorage {
	const op = "App.initStorage"
	log := slog.With("op", op)

	rdb, err := kvstore.NewRedis(app.ctx, app.cfg.RedisAddr)
	if err != nil {
		log.Warn("redis connection failed, using in-memory fallback", "err", err)
		return kvstore.NewFallback(nil)
	}

	app.closers = append(app.closers, rdb)
	return kvstore.NewFallback(rdb)
}

func (app *App) initEventsProducer() port.ClientEventsProducer {
	const op = "App.initEventsProducer"
	log := slog.With("op", op)

	brokers := app.cfg.Broker.SeedBrokers
	if len(brokers) == 0 {
		log.Info("no seed brokers configured, client events are disabled")
		return analytics.Noop{}
	}

	p, err := analytics.NewClientEventsProducer(
		app.ctx, brokers, app.cfg.Broker.ClientEventsTopic,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.closers = append(app.closers, p)
	return p
}

func (app *App) initCatalog() catalog.Catalog {
	const op = "App.initCatalog"

	cat, err := catalog.New()
	if err != nil {
		app.fallDown(op, err)
	}

	slog.Info("catalog is loaded", "nProducts", cat.Len())
	return cat
}

func (app *App) initHTTPServer(
	assistant service.Assistant, payments service.PaymentService,
) {
	mux := http.NewServeMux()
	httphandler.RegisterAssistant(mux, assistant, assistant, assistant, assistant)
	httphandler.RegisterPayments(mux, payments, payments)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	for _, c := range app.closers {
		c.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
