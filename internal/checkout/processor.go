package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/metrics"
	"github.com/angelmondragon/backoffice/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCurrencySymbol = "RM"

type catalogReader interface {
	Get(id string) (models.Product, bool)
	Exists(id string) bool
}

type pricer interface {
	EffectivePrice(productID string, base decimal.Decimal) decimal.Decimal
}

type checkoutObserver interface {
	ObserveCheckout(outcome string, invalid int, total float64)
}

// Line is one resolved item on a receipt.
type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
}

// Result describes a finished checkout. InvalidIDs are diagnostics for the
// caller; they never fail the checkout. Sale is nil when nothing was sold.
type Result struct {
	Receipt    string
	Lines      []Line
	Total      decimal.Decimal
	InvalidIDs []string
	Sale       *models.SaleRecord
}

// Option customises a Processor.
type Option func(*Processor)

func WithCurrencySymbol(symbol string) Option {
	return func(p *Processor) {
		if strings.TrimSpace(symbol) != "" {
			p.symbol = symbol
		}
	}
}

func WithMetrics(m checkoutObserver) Option {
	return func(p *Processor) {
		if m != nil {
			p.metrics = m
		}
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(p *Processor) {
		if logg != nil {
			p.logg = logg
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// Processor turns a list of product ids into a receipt and a sale record.
type Processor struct {
	catalog catalogReader
	prices  pricer
	sales   *SaleLog
	symbol  string
	metrics checkoutObserver
	logg    *logger.Logger
	now     func() time.Time
}

func NewProcessor(catalog catalogReader, prices pricer, sales *SaleLog, opts ...Option) (*Processor, error) {
	if catalog == nil {
		return nil, errors.New("catalog required")
	}
	if prices == nil {
		return nil, errors.New("pricer required")
	}
	if sales == nil {
		return nil, errors.New("sale log required")
	}
	p := &Processor{
		catalog: catalog,
		prices:  prices,
		sales:   sales,
		symbol:  defaultCurrencySymbol,
		metrics: metrics.NewCheckoutMetrics(nil),
		logg:    logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Processor) Sales() *SaleLog {
	return p.sales
}

func (p *Processor) CurrencySymbol() string {
	return p.symbol
}

// Checkout prices every id in order. Unknown ids are collected in
// InvalidIDs. A sale is logged only when the total is above zero.
func (p *Processor) Checkout(ctx context.Context, productIDs []string) Result {
	result := Result{
		Lines:      []Line{},
		Total:      decimal.Zero,
		InvalidIDs: []string{},
	}
	resolved := make([]string, 0, len(productIDs))

	var receipt strings.Builder
	receipt.WriteString("Receipt:\n")
	for _, id := range productIDs {
		product, ok := p.catalog.Get(id)
		if !ok {
			result.InvalidIDs = append(result.InvalidIDs, id)
			continue
		}
		price := p.prices.EffectivePrice(id, product.Price)
		result.Total = result.Total.Add(price)
		result.Lines = append(result.Lines, Line{ProductID: id, Name: product.Name, Price: price})
		resolved = append(resolved, id)
		receipt.WriteString(product.Name + ": " + money.Format(p.symbol, price) + "\n")
	}
	receipt.WriteString("Total: " + money.Format(p.symbol, result.Total) + "\n")
	result.Receipt = receipt.String()

	ctx = p.logg.WithOperation(ctx, "checkout")
	if len(result.InvalidIDs) > 0 {
		ctx = p.logg.WithField(ctx, "invalid_ids", result.InvalidIDs)
		p.logg.Warn(ctx, "checkout skipped unknown product ids")
	}

	outcome := metrics.OutcomeNoSale
	if result.Total.IsPositive() {
		sale := models.SaleRecord{
			ID:         uuid.New(),
			ProductIDs: resolved,
			Total:      result.Total,
			CreatedAt:  p.now().UTC(),
		}
		p.sales.Append(sale)
		result.Sale = &sale
		outcome = metrics.OutcomeSale
		p.logg.Info(p.logg.WithField(ctx, "sale_id", sale.ID.String()), "sale recorded")
	}
	total, _ := result.Total.Float64()
	p.metrics.ObserveCheckout(outcome, len(result.InvalidIDs), total)

	return result
}

// ParseIDs splits comma separated caller input into trimmed ids. Empty
// segments are dropped.
func ParseIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
