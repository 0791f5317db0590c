package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/backoffice/internal/backoffice"
	"github.com/angelmondragon/backoffice/pkg/config"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "backoffice"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	var f flags
	flag.StringVar(&f.cmd, "cmd", "summary",
		"comma separated steps run in order in one process: summary|products|add-product|discount|checkout|report|track|feedback. "+
			"Sales and discounts live in memory only, so e.g. -cmd discount,checkout,report is needed to see them together")
	flag.StringVar(&f.ids, "ids", "", "comma separated product ids (checkout)")
	flag.StringVar(&f.productType, "type", "", "product type filter (products) or new product type (add-product)")
	flag.StringVar(&f.id, "id", "", "product id (add-product, discount; empty discount id means every product) or order id (track)")
	flag.StringVar(&f.name, "name", "", "product name (add-product)")
	flag.StringVar(&f.details, "details", "", "product details (add-product)")
	flag.StringVar(&f.price, "price", "", "product price (add-product)")
	flag.StringVar(&f.percent, "percent", "", "discount percent 0-100 (discount)")
	flag.StringVar(&f.text, "text", "", "feedback text (feedback)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "backoffice",
		Format:      cfg.App.LogFormat,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Fields:      map[string]any{"env": cfg.App.Env},
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"backend": cfg.Storage.Backend,
		"cmd":     f.cmd,
	})
	ctx = logg.WithSessionID(ctx, uuid.NewString())

	app, err := backoffice.New(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to start backoffice", err)
		os.Exit(1)
	}

	runErr := newRunner(app, logg, os.Stdout).run(ctx, f)
	if err := app.Close(); err != nil {
		logg.Error(ctx, "error closing backoffice", err)
	}
	if runErr != nil {
		os.Exit(exitCode(ctx, logg, runErr))
	}
}

// exitCode is 2 for caller input errors, which are printed plainly, and 1
// for everything else, which is logged with the error dump.
func exitCode(ctx context.Context, logg *logger.Logger, err error) int {
	if pkgerrors.IsValidation(err) {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logg.Error(logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), "command failed", err)
	return 1
}
