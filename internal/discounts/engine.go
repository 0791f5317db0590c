// Package discounts keeps per-product percentage discounts and computes
// effective prices from them.
package discounts

import (
	"errors"
	"sort"
	"sync"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	minPercent = decimal.Zero
	maxPercent = decimal.NewFromInt(100)
)

// catalogReader is the slice of the catalog the engine reads.
type catalogReader interface {
	Get(id string) (models.Product, bool)
	Exists(id string) bool
	IDs() []string
}

// Active is one discount as shown to an operator. Stale discounts point at a
// product id that is no longer in the catalog.
type Active struct {
	ProductID   string
	ProductName string
	Percent     decimal.Decimal
	Stale       bool
}

// Engine holds at most one discount per product id.
type Engine struct {
	mu        sync.RWMutex
	discounts map[string]decimal.Decimal
	catalog   catalogReader
}

func NewEngine(catalog catalogReader) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("catalog required")
	}
	return &Engine{
		discounts: map[string]decimal.Decimal{},
		catalog:   catalog,
	}, nil
}

func validatePercent(percent decimal.Decimal) error {
	if percent.LessThan(minPercent) || percent.GreaterThan(maxPercent) {
		return pkgerrors.Newf(pkgerrors.CodeInvalidRange, "discount %s must be between 0 and 100", percent.String()).
			WithDetails(map[string]any{"percent": percent.String()})
	}
	return nil
}

// SetDiscount replaces any previous discount on productID.
func (e *Engine) SetDiscount(productID string, percent decimal.Decimal) error {
	if err := validatePercent(percent); err != nil {
		return err
	}
	if !e.catalog.Exists(productID) {
		return pkgerrors.Newf(pkgerrors.CodeUnknownProduct, "product %s not in catalog", productID)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discounts[productID] = percent
	return nil
}

// SetDiscountForAll applies percent to every product currently in the
// catalog. Products added later are not discounted.
func (e *Engine) SetDiscountForAll(percent decimal.Decimal) (int, error) {
	if err := validatePercent(percent); err != nil {
		return 0, err
	}
	ids := e.catalog.IDs()
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range ids {
		e.discounts[id] = percent
	}
	return len(ids), nil
}

// ClearDiscount reports whether a discount was removed.
func (e *Engine) ClearDiscount(productID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.discounts[productID]; !ok {
		return false
	}
	delete(e.discounts, productID)
	return true
}

func (e *Engine) ClearAllDiscounts() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discounts = map[string]decimal.Decimal{}
}

func (e *Engine) Discount(productID string) (decimal.Decimal, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	percent, ok := e.discounts[productID]
	return percent, ok
}

// EffectivePrice applies the product's discount to base. Without a discount
// base is returned unchanged.
func (e *Engine) EffectivePrice(productID string, base decimal.Decimal) decimal.Decimal {
	percent, ok := e.Discount(productID)
	if !ok {
		return base
	}
	return money.ApplyPercentOff(base, percent)
}

// ActiveDiscounts lists discounts sorted by product id with names resolved
// from the catalog at call time.
func (e *Engine) ActiveDiscounts() []Active {
	e.mu.RLock()
	out := make([]Active, 0, len(e.discounts))
	for id, percent := range e.discounts {
		out = append(out, Active{ProductID: id, Percent: percent})
	}
	e.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	for i := range out {
		product, ok := e.catalog.Get(out[i].ProductID)
		if !ok {
			out[i].Stale = true
			continue
		}
		out[i].ProductName = product.Name
	}
	return out
}
