package checkout

import (
	"context"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
)

// Cart is one customer's pending selection of item codes. Each session owns
// its own cart.
type Cart struct {
	mu      sync.Mutex
	catalog catalogReader
	items   []string
}

func NewCart(catalog catalogReader) *Cart {
	return &Cart{catalog: catalog}
}

// Add appends code. Codes must be known to the catalog and appear at most
// once per cart.
func (c *Cart) Add(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return pkgerrors.New(pkgerrors.CodeEmptyIdentifier, "item code is required")
	}
	if c.catalog != nil && !c.catalog.Exists(code) {
		return pkgerrors.Newf(pkgerrors.CodeUnknownProduct, "item %s not in catalog", code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.items {
		if existing == code {
			return pkgerrors.Newf(pkgerrors.CodeDuplicateKey, "item %s already in cart", code)
		}
	}
	c.items = append(c.items, code)
	return nil
}

func (c *Cart) Remove(code string) error {
	code = strings.TrimSpace(code)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.items {
		if existing == code {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "item %s not in cart", code)
}

func (c *Cart) Items() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.items...)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// CheckoutCart checks out the cart contents and empties the cart.
func (p *Processor) CheckoutCart(ctx context.Context, cart *Cart) (Result, error) {
	if cart == nil || cart.Len() == 0 {
		return Result{}, pkgerrors.New(pkgerrors.CodeEmptyField, "cart is empty")
	}
	result := p.Checkout(ctx, cart.Items())
	cart.Clear()
	return result, nil
}
