// Package backoffice builds every store from configuration and hands them
// to a caller as one App.
package backoffice

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/angelmondragon/backoffice/internal/catalog"
	"github.com/angelmondragon/backoffice/internal/checkout"
	"github.com/angelmondragon/backoffice/internal/credentials"
	"github.com/angelmondragon/backoffice/internal/discounts"
	"github.com/angelmondragon/backoffice/internal/feedback"
	"github.com/angelmondragon/backoffice/internal/finance"
	"github.com/angelmondragon/backoffice/internal/inventory"
	"github.com/angelmondragon/backoffice/internal/orders"
	"github.com/angelmondragon/backoffice/internal/reporting"
	"github.com/angelmondragon/backoffice/pkg/config"
	"github.com/angelmondragon/backoffice/pkg/db"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/journal"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/metrics"
	"github.com/angelmondragon/backoffice/pkg/migrate"
	"github.com/angelmondragon/backoffice/pkg/security"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// App holds one instance of every store. Stores are safe for concurrent use.
type App struct {
	Config       *config.Config
	Catalog      *catalog.Store
	Discounts    *discounts.Engine
	Sales        *checkout.SaleLog
	Checkout     *checkout.Processor
	Orders       *orders.Manager
	OrderJournal *orders.Journal
	Inventory    *inventory.Ledger
	Finance      *finance.Ledger
	Credentials  *credentials.Store
	Reports      *reporting.Generator
	Feedback     *feedback.Board
	Reviews      *feedback.Reviews

	// LoadWarnings lists stores that could not be loaded and started empty.
	LoadWarnings []error

	logg    *logger.Logger
	closers []io.Closer
	// gatherer is flushed to Config.Metrics.Textfile on Close.
	gatherer prometheus.Gatherer
}

type Option func(*buildOptions)

type buildOptions struct {
	db         *db.Client
	kv         redisKV
	registerer prometheus.Registerer
}

// WithDB reuses an open database client instead of dialing cfg.DB. The App
// does not close it.
func WithDB(client *db.Client) Option {
	return func(o *buildOptions) { o.db = client }
}

// WithRedis reuses an existing key-value client instead of dialing cfg.Redis.
func WithRedis(kv redisKV) Option {
	return func(o *buildOptions) { o.kv = kv }
}

// WithRegisterer registers checkout metrics on reg. Without it, New uses a
// private registry when a metrics textfile is configured and no-op metrics
// otherwise.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *buildOptions) { o.registerer = reg }
}

// New wires the stores, loads their persisted state and seeds the admin
// account. Load failures do not stop start-up; they are collected in
// LoadWarnings.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	app := &App{Config: cfg, logg: logg}
	if o.registerer == nil && cfg.Metrics.Textfile != "" {
		o.registerer = prometheus.NewRegistry()
	}
	if g, ok := o.registerer.(prometheus.Gatherer); ok && cfg.Metrics.Textfile != "" {
		app.gatherer = g
	}
	b, err := app.newBackend(ctx, o)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if err := app.wire(b, o); err != nil {
		_ = app.Close()
		return nil, err
	}
	app.load(ctx)
	if err := app.seedAdmin(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) newBackend(ctx context.Context, o buildOptions) (*backend, error) {
	b := &backend{kind: a.Config.Storage.Backend, storage: a.Config.Storage}
	ctx = a.logg.WithField(ctx, "backend", b.kind)

	switch b.kind {
	case backendSQL:
		client := o.db
		if client == nil {
			opened, err := db.New(ctx, a.Config.DB, a.logg)
			if err != nil {
				return nil, fmt.Errorf("open database: %w", err)
			}
			a.closers = append(a.closers, opened)
			client = opened
		}
		if a.Config.Storage.AutoMigrate {
			version, err := migrate.Apply(ctx, client)
			if err != nil {
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			a.logg.Info(a.logg.WithField(ctx, "version", version), "migrations applied")
		}
		b.db = client
	case backendRedis:
		kv := o.kv
		if kv == nil {
			opened, err := dialRedis(ctx, a.Config.Redis, a.logg)
			if err != nil {
				return nil, fmt.Errorf("open redis: %w", err)
			}
			a.closers = append(a.closers, opened)
			kv = opened
		}
		b.kv = kv
	}
	a.logg.Info(ctx, "storage backend ready")
	return b, nil
}

func (a *App) wire(b *backend, o buildOptions) error {
	var err error
	if a.Catalog, err = catalog.NewStore(productSnapshot(b), a.logg); err != nil {
		return err
	}
	if a.Discounts, err = discounts.NewEngine(a.Catalog); err != nil {
		return err
	}
	a.Sales = checkout.NewSaleLog()
	a.Checkout, err = checkout.NewProcessor(a.Catalog, a.Discounts, a.Sales,
		checkout.WithCurrencySymbol(a.Config.Checkout.CurrencySymbol),
		checkout.WithMetrics(metrics.NewCheckoutMetrics(o.registerer)),
		checkout.WithLogger(a.logg),
	)
	if err != nil {
		return err
	}
	if a.Orders, err = orders.NewManager(orderSnapshot(b), a.logg); err != nil {
		return err
	}
	orderLines := journal.NewFile(a.Config.Storage.Path(a.Config.Storage.OrderJournal))
	if a.OrderJournal, err = orders.NewJournal(orderLines, a.logg); err != nil {
		return err
	}
	if a.Inventory, err = inventory.NewLedger(inventorySnapshot(b), a.logg); err != nil {
		return err
	}
	if a.Finance, err = finance.NewLedger(ledgerSnapshot(b), a.logg); err != nil {
		return err
	}
	hasher, err := security.NewHasher(a.Config.Password)
	if err != nil {
		return err
	}
	if a.Credentials, err = credentials.NewStore(hasher, accountSnapshot(b), a.logg); err != nil {
		return err
	}
	if a.Reports, err = reporting.NewGenerator(a.Catalog, a.Sales); err != nil {
		return err
	}
	if a.Feedback, err = feedback.NewBoard(feedbackSnapshot(b), a.Config.Feedback.MaxLength, a.logg); err != nil {
		return err
	}
	reviewLines := journal.NewFile(a.Config.Storage.Path(a.Config.Storage.ReviewFile))
	if a.Reviews, err = feedback.NewReviews(reviewLines, a.logg); err != nil {
		return err
	}
	return nil
}

type loader interface {
	Load(ctx context.Context) error
}

func (a *App) load(ctx context.Context) {
	stores := []struct {
		name string
		l    loader
	}{
		{"catalog", a.Catalog},
		{"orders", a.Orders},
		{"inventory", a.Inventory},
		{"finance", a.Finance},
		{"credentials", a.Credentials},
		{"feedback", a.Feedback},
	}
	for _, s := range stores {
		if err := s.l.Load(ctx); err != nil {
			a.LoadWarnings = append(a.LoadWarnings, err)
			a.logg.Warn(a.logg.WithFields(ctx, map[string]any{"store": s.name, "error": err.Error()}), "store started empty")
		}
	}
}

func (a *App) seedAdmin(ctx context.Context) error {
	admin := a.Config.Admin
	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	created, err := a.Credentials.Seed(ctx, admin.Username, admin.Password)
	if err != nil {
		if !pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable) {
			return fmt.Errorf("seed admin: %w", err)
		}
		a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "admin seed not persisted")
	}
	if created {
		a.logg.Info(a.logg.WithField(ctx, "username", admin.Username), "admin account created")
	}
	return nil
}

// NewCart starts a cart session bound to the catalog.
func (a *App) NewCart() *checkout.Cart {
	return checkout.NewCart(a.Catalog)
}

// Close writes the metrics textfile, if configured, and releases
// connections opened by New.
func (a *App) Close() error {
	var errs error
	if a.gatherer != nil {
		errs = multierr.Append(errs, metrics.WriteTextfile(a.gatherer, a.Config.Metrics.Textfile))
		a.gatherer = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errs
}
