package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/money"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
	"github.com/angelmondragon/backoffice/pkg/validate"
)

const storeName = "catalog"

// CreateProductInput is the raw caller text for a new product.
type CreateProductInput struct {
	ID      string `json:"id" validate:"notblank"`
	Name    string `json:"name" validate:"notblank"`
	Type    string `json:"type"`
	Details string `json:"details"`
	Price   string `json:"price"`
}

// Store is the product catalog. Products keep their insertion order.
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	index    map[string]int
	snap     snapshot.Store[models.Product]
	logg     *logger.Logger
}

func NewStore(snap snapshot.Store[models.Product], logg *logger.Logger) (*Store, error) {
	if snap == nil {
		return nil, errors.New("catalog snapshot required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		products: []models.Product{},
		index:    map[string]int{},
		snap:     snap,
		logg:     logg,
	}, nil
}

// Load replaces the in-memory catalog with the persisted one. On failure the
// catalog is empty and the returned error is a warning, not a fatal condition.
func (s *Store) Load(ctx context.Context) error {
	products, err := snapshot.LoadOrEmpty(ctx, s.snap, storeName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]models.Product, 0, len(products))
	s.index = make(map[string]int, len(products))
	for _, p := range products {
		if reason := s.rejectLoaded(p); reason != "" {
			s.logg.Warn(s.logg.WithFields(s.logg.WithStore(ctx, storeName), map[string]any{
				"product_id": p.ID,
				"reason":     reason,
			}), "skipping catalog entry")
			continue
		}
		s.index[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	if err != nil {
		s.logg.Warn(s.logg.WithStore(ctx, storeName), "catalog unavailable, starting empty")
		return err
	}
	return nil
}

// rejectLoaded explains why a snapshot entry cannot join the catalog, or
// returns "" when it can. The first entry for an id wins. Callers hold s.mu.
func (s *Store) rejectLoaded(p models.Product) string {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return "blank id"
	case p.Price.IsNegative():
		return "negative price"
	}
	if _, ok := s.index[p.ID]; ok {
		return "duplicate id"
	}
	return ""
}

// AddProduct validates the input and appends a product. When the snapshot
// save fails the product is still returned and kept in memory.
func (s *Store) AddProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validate.Struct(pkgerrors.CodeEmptyField, input); err != nil {
		return nil, err
	}
	price, err := money.ParseNonNegative(input.Price)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:      strings.TrimSpace(input.ID),
		Name:    strings.TrimSpace(input.Name),
		Type:    strings.TrimSpace(input.Type),
		Details: strings.TrimSpace(input.Details),
		Price:   price,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[product.ID]; ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeDuplicateKey, "product %s already exists", product.ID)
	}
	s.index[product.ID] = len(s.products)
	s.products = append(s.products, product)

	out := product
	if err := snapshot.SaveErr(s.snap.Save(ctx, s.products), storeName); err != nil {
		s.logg.Error(s.logg.WithStore(ctx, storeName), "save catalog", err)
		return &out, err
	}
	return &out, nil
}

func (s *Store) ListProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product{}, s.products...)
}

// ListProductsByType matches the type exactly, including case.
func (s *Store) ListProductsByType(productType string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Product{}
	for _, p := range s.products {
		if p.Type == productType {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Get(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Product{}, false
	}
	return s.products[i], true
}

func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// IDs returns product ids in catalog order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.products))
	for _, p := range s.products {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
