package orders

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	"github.com/angelmondragon/backoffice/pkg/enums"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
)

const storeName = "orders"

// Re-exported so callers do not need the enums package for common labels.
const (
	StatusPending   = enums.OrderStatusPending
	StatusCompleted = enums.OrderStatusCompleted
	StatusCancelled = enums.OrderStatusCancelled
)

// Manager owns the order table. Orders are never deleted and only their
// status changes after creation.
type Manager struct {
	mu     sync.RWMutex
	orders []models.Order
	index  map[string]int
	snap   snapshot.Store[models.Order]
	logg   *logger.Logger
	now    func() time.Time
}

func NewManager(snap snapshot.Store[models.Order], logg *logger.Logger) (*Manager, error) {
	if snap == nil {
		return nil, errors.New("orders snapshot required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Manager{
		orders: []models.Order{},
		index:  map[string]int{},
		snap:   snap,
		logg:   logg,
		now:    time.Now,
	}, nil
}

func (m *Manager) Load(ctx context.Context) error {
	orders, err := snapshot.LoadOrEmpty(ctx, m.snap, storeName)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = orders
	m.index = make(map[string]int, len(orders))
	for i, o := range orders {
		m.index[o.ID] = i
	}
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		m.logg.Warn(m.logg.WithStore(ctx, storeName), "orders unavailable, starting empty")
		return err
	}
	return nil
}

// CreateOrder records a new order. Items are copied; later changes to the
// caller's slice do not affect the stored order.
func (m *Manager) CreateOrder(ctx context.Context, id, status string, items []string) (*models.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyIdentifier, "order id is required")
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedDetails, "order status is required")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedDetails, "order needs at least one item")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[id]; ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeDuplicateKey, "order %s already exists", id)
	}
	now := m.now().UTC()
	order := models.Order{
		ID:        id,
		Status:    status,
		Items:     append([]string(nil), items...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.index[id] = len(m.orders)
	m.orders = append(m.orders, order)

	out := copyOrder(order)
	return &out, m.save(ctx)
}

func (m *Manager) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyIdentifier, "order id is required")
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedDetails, "order status is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "order %s not found", id)
	}
	m.orders[i].Status = status
	m.orders[i].UpdatedAt = m.now().UTC()

	out := copyOrder(m.orders[i])
	return &out, m.save(ctx)
}

func (m *Manager) Get(id string) (models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[strings.TrimSpace(id)]
	if !ok {
		return models.Order{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "order %s not found", id)
	}
	return copyOrder(m.orders[i]), nil
}

// List returns orders in creation order.
func (m *Manager) List() []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, len(m.orders))
	for i, o := range m.orders {
		out[i] = copyOrder(o)
	}
	return out
}

// save must be called with m.mu held.
func (m *Manager) save(ctx context.Context) error {
	if err := snapshot.SaveErr(m.snap.Save(ctx, m.orders), storeName); err != nil {
		m.logg.Error(m.logg.WithStore(ctx, storeName), "save orders", err)
		return err
	}
	return nil
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]string(nil), o.Items...)
	return o
}
