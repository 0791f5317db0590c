package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/angelmondragon/backoffice/internal/backoffice"
	"github.com/angelmondragon/backoffice/internal/catalog"
	"github.com/angelmondragon/backoffice/internal/checkout"
	"github.com/angelmondragon/backoffice/internal/reporting"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/money"
)

type flags struct {
	cmd         string
	ids         string
	productType string
	id          string
	name        string
	details     string
	price       string
	percent     string
	text        string
}

type runner struct {
	app  *backoffice.App
	logg *logger.Logger
	out  io.Writer
}

func newRunner(app *backoffice.App, logg *logger.Logger, out io.Writer) *runner {
	return &runner{app: app, logg: logg, out: out}
}

// run executes each comma separated step of f.cmd against the same App and
// stops at the first failing step.
func (r *runner) run(ctx context.Context, f flags) error {
	steps := checkout.ParseIDs(f.cmd)
	if len(steps) == 0 {
		return pkgerrors.New(pkgerrors.CodeEmptyField, "no command given")
	}
	for _, step := range steps {
		if err := r.step(r.logg.WithOperation(ctx, step), step, f); err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
	}
	return nil
}

func (r *runner) step(ctx context.Context, step string, f flags) error {
	app := r.app
	symbol := app.Checkout.CurrencySymbol()

	switch step {
	case "summary":
		totals := app.Finance.Totals()
		r.logg.Info(r.logg.WithFields(ctx, map[string]any{
			"products":  app.Catalog.Len(),
			"orders":    len(app.Orders.List()),
			"inventory": len(app.Inventory.List()),
			"feedback":  len(app.Feedback.List()),
			"income":    totals.Income.StringFixed(2),
			"expenses":  totals.Expenses.StringFixed(2),
			"profit":    totals.Profit().StringFixed(2),
		}), "backoffice ready")

	case "products":
		products := app.Catalog.ListProducts()
		if f.productType != "" {
			products = app.Catalog.ListProductsByType(f.productType)
		}
		for _, p := range products {
			fmt.Fprintf(r.out, "%-6s | %-20s | %-10s | %-20s | %s\n", p.ID, p.Name, p.Type, p.Details, money.Format(symbol, p.Price))
		}

	case "add-product":
		product, err := app.Catalog.AddProduct(ctx, catalog.CreateProductInput{
			ID: f.id, Name: f.name, Type: f.productType, Details: f.details, Price: f.price,
		})
		if product == nil {
			return err
		}
		if err != nil {
			r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "product added but not saved")
		}
		fmt.Fprintf(r.out, "added %s (%s)\n", product.ID, product.Name)

	case "discount":
		percent, err := money.ParseAmount(f.percent)
		if err != nil {
			return err
		}
		if strings.TrimSpace(f.id) == "" {
			n, err := app.Discounts.SetDiscountForAll(percent)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.out, "discount of %s%% set on %d products\n", percent.String(), n)
			return nil
		}
		if err := app.Discounts.SetDiscount(strings.TrimSpace(f.id), percent); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "discount of %s%% set on %s\n", percent.String(), strings.TrimSpace(f.id))

	case "checkout":
		result := app.Checkout.Checkout(ctx, checkout.ParseIDs(f.ids))
		if len(result.InvalidIDs) > 0 {
			fmt.Fprintf(r.out, "Invalid Product IDs: %s\n", strings.Join(result.InvalidIDs, ", "))
		}
		fmt.Fprint(r.out, result.Receipt)

	case "report":
		fmt.Fprint(r.out, reporting.Render(app.Reports.Generate(), symbol))

	case "track":
		order, err := app.OrderJournal.TrackByID(ctx, f.id)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Order Details: %s\n", order.Line)

	case "feedback":
		if _, err := app.Feedback.Add(ctx, f.text); err != nil && !pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable) {
			return err
		}
		fmt.Fprintln(r.out, "Feedback added successfully.")

	default:
		return pkgerrors.Newf(pkgerrors.CodeMalformedDetails, "unknown command %q", step)
	}
	return nil
}
