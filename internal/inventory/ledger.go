package inventory

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
)

const storeName = "inventory"

// Ledger maps stock item names to positive on-hand quantities.
type Ledger struct {
	mu    sync.RWMutex
	items map[string]int
	snap  snapshot.Store[models.InventoryItem]
	logg  *logger.Logger
}

func NewLedger(snap snapshot.Store[models.InventoryItem], logg *logger.Logger) (*Ledger, error) {
	if snap == nil {
		return nil, errors.New("inventory snapshot required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Ledger{items: map[string]int{}, snap: snap, logg: logg}, nil
}

func (l *Ledger) Load(ctx context.Context) error {
	items, err := snapshot.LoadOrEmpty(ctx, l.snap, storeName)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			l.items[item.Name] = item.Quantity
		}
	}
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		l.logg.Warn(l.logg.WithStore(ctx, storeName), "inventory unavailable, starting empty")
		return err
	}
	return nil
}

// AddItem creates a new item. An existing name is rejected untouched; use
// IncrementQuantity to top it up.
func (l *Ledger) AddItem(ctx context.Context, name string, qty int) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := checkQuantity(qty); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.items[name]; ok {
		return pkgerrors.Newf(pkgerrors.CodeDuplicateKey, "item %s already exists", name).
			WithDetails(map[string]any{"quantity": l.items[name]})
	}
	l.items[name] = qty
	return l.save(ctx)
}

// IncrementQuantity adds delta to an existing item and returns the new quantity.
func (l *Ledger) IncrementQuantity(ctx context.Context, name string, delta int) (int, error) {
	name, err := cleanName(name)
	if err != nil {
		return 0, err
	}
	if err := checkQuantity(delta); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.items[name]
	if !ok {
		return 0, notFound(name)
	}
	if delta > math.MaxInt-current {
		return 0, pkgerrors.Newf(pkgerrors.CodeInvalidQuantity, "adding %d to %s would overflow its quantity %d", delta, name, current).
			WithDetails(map[string]any{"quantity": current})
	}
	l.items[name] = current + delta
	return l.items[name], l.save(ctx)
}

func (l *Ledger) SetQuantity(ctx context.Context, name string, qty int) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := checkQuantity(qty); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.items[name]; !ok {
		return notFound(name)
	}
	l.items[name] = qty
	return l.save(ctx)
}

func (l *Ledger) RemoveItem(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.items[name]; !ok {
		return notFound(name)
	}
	delete(l.items, name)
	return l.save(ctx)
}

func (l *Ledger) Quantity(name string) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	qty, ok := l.items[strings.TrimSpace(name)]
	return qty, ok
}

// List returns every item sorted by name.
func (l *Ledger) List() []models.InventoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedLocked()
}

func (l *Ledger) sortedLocked() []models.InventoryItem {
	out := make([]models.InventoryItem, 0, len(l.items))
	for name, qty := range l.items {
		out = append(out, models.InventoryItem{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// save must be called with l.mu held.
func (l *Ledger) save(ctx context.Context) error {
	if err := snapshot.SaveErr(l.snap.Save(ctx, l.sortedLocked()), storeName); err != nil {
		l.logg.Error(l.logg.WithStore(ctx, storeName), "save inventory", err)
		return err
	}
	return nil
}

// ParseQuantity converts caller text into a positive quantity.
func ParseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInvalidNumeric, err, "quantity must be a whole number")
	}
	if err := checkQuantity(qty); err != nil {
		return 0, err
	}
	return qty, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeEmptyName, "item name is required")
	}
	return name, nil
}

func checkQuantity(qty int) error {
	if qty <= 0 {
		return pkgerrors.Newf(pkgerrors.CodeInvalidQuantity, "quantity %d must be positive", qty)
	}
	return nil
}

func notFound(name string) error {
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "item %s not found", name)
}
