package backoffice

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/backoffice/internal/catalog"
	"github.com/angelmondragon/backoffice/internal/reporting"
	"github.com/angelmondragon/backoffice/pkg/config"
	"github.com/angelmondragon/backoffice/pkg/db"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	pkgredis "github.com/angelmondragon/backoffice/pkg/redis"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, LogLevel: "debug"},
		Storage: config.StorageConfig{
			Backend:      backend,
			DataDir:      t.TempDir(),
			CatalogFile:  "defaultproducts.json",
			OrderJournal: "Order.txt",
			ReviewFile:   "Feedback.txt",
			AutoMigrate:  true,
		},
		Password: config.PasswordConfig{Hasher: "sha256"},
		Checkout: config.CheckoutConfig{CurrencySymbol: "RM"},
		Feedback: config.FeedbackConfig{MaxLength: 200},
		Admin:    config.AdminConfig{Username: "admin", Password: "admin123"},
	}
}

func newApp(t *testing.T, cfg *config.Config, opts ...Option) *App {
	t.Helper()
	app, err := New(context.Background(), cfg, nil, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func seedCatalog(t *testing.T, app *App) {
	t.Helper()
	for _, in := range []catalog.CreateProductInput{
		{ID: "B01", Name: "Latte", Type: "Beverage", Price: "10"},
		{ID: "F01", Name: "Nasi Lemak", Type: "Food", Price: "12.50"},
	} {
		_, err := app.Catalog.AddProduct(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestMemoryBackendEndToEnd(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	app := newApp(t, testConfig(t, backendMemory), WithRegisterer(reg))

	assert.Len(t, app.LoadWarnings, 1, "memory catalog starts missing")
	assert.True(t, app.Credentials.Verify("admin", "admin123"))

	seedCatalog(t, app)
	require.NoError(t, app.Discounts.SetDiscount("B01", decimal.NewFromInt(20)))

	cart := app.NewCart()
	require.NoError(t, cart.Add("B01"))
	require.NoError(t, cart.Add("F01"))
	result, err := app.Checkout.CheckoutCart(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, "Receipt:\nLatte: RM8.00\nNasi Lemak: RM12.50\nTotal: RM20.50\n", result.Receipt)

	out := reporting.Render(app.Reports.Generate(), app.Checkout.CurrencySymbol())
	assert.Contains(t, out, "Total Sales: RM20.50\n")
	assert.Contains(t, out, "Latte: 1 sold\n")

	series, err := testutil.GatherAndCount(reg, "checkouts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestFileBackendPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, backendFile)

	first := newApp(t, cfg)
	seedCatalog(t, first)
	_, err := first.Orders.CreateOrder(ctx, "O-1", "Pending", []string{"B01"})
	require.NoError(t, err)
	require.NoError(t, first.Inventory.AddItem(ctx, "milk", 4))
	_, err = first.Finance.AddIncomeString(ctx, "100")
	require.NoError(t, err)
	_, err = first.Feedback.Add(ctx, "Lovely")
	require.NoError(t, err)
	placed, err := first.OrderJournal.PlaceOrder(ctx, "Aina", []string{"Latte"})
	require.NoError(t, err)
	_, err = first.Reviews.Review(ctx, "aina", "Latte", "smooth")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.Storage.DataDir, "defaultproducts.json"))
	require.NoError(t, err)

	second := newApp(t, cfg)
	assert.Empty(t, second.LoadWarnings)
	assert.Equal(t, []string{"B01", "F01"}, second.Catalog.IDs())
	order, err := second.Orders.Get("O-1")
	require.NoError(t, err)
	assert.Equal(t, "Pending", order.Status)
	qty, ok := second.Inventory.Quantity("milk")
	assert.True(t, ok)
	assert.Equal(t, 4, qty)
	assert.True(t, second.Finance.Profit().Equal(decimal.NewFromInt(100)))
	assert.Len(t, second.Feedback.List(), 1)
	assert.True(t, second.Credentials.Verify("admin", "admin123"))

	tracked, err := second.OrderJournal.TrackByID(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aina", tracked.CustomerName)
	reviews, err := second.Reviews.Reviews(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestFileBackendCorruptCatalogStartsEmpty(t *testing.T) {
	cfg := testConfig(t, backendFile)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Storage.DataDir, "defaultproducts.json"), []byte("[{"), 0o644))

	app := newApp(t, cfg)
	require.Len(t, app.LoadWarnings, 1)
	assert.True(t, pkgerrors.Is(app.LoadWarnings[0], pkgerrors.CodeStorageUnavailable))
	assert.Empty(t, app.Catalog.ListProducts())
}

func TestSQLBackend(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	client := db.NewFromConn(conn, db.DriverSQLite)
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig(t, backendSQL)
	first := newApp(t, cfg, WithDB(client))
	seedCatalog(t, first)
	_, err = first.Orders.CreateOrder(ctx, "O-7", "Pending", []string{"F01", "B01"})
	require.NoError(t, err)

	second := newApp(t, cfg, WithDB(client))
	products := second.Catalog.ListProducts()
	require.Len(t, products, 2)
	assert.Equal(t, "B01", products[0].ID)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("12.5")))
	order, err := second.Orders.Get("O-7")
	require.NoError(t, err)
	assert.Equal(t, []string{"F01", "B01"}, order.Items)
	assert.True(t, second.Credentials.Verify("admin", "admin123"))
}

type memoryKV struct {
	data map[string]string
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", pkgredis.ErrNil
	}
	return v, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryKV) SnapshotKey(store string) string {
	return "bo:snapshot:" + store
}

func TestRedisBackend(t *testing.T) {
	kv := &memoryKV{data: map[string]string{}}
	cfg := testConfig(t, backendRedis)

	first := newApp(t, cfg, WithRedis(kv))
	seedCatalog(t, first)
	assert.True(t, strings.Contains(kv.data["bo:snapshot:catalog"], `"B01"`))
	assert.Contains(t, kv.data, "bo:snapshot:credentials")

	second := newApp(t, cfg, WithRedis(kv))
	assert.Equal(t, []string{"B01", "F01"}, second.Catalog.IDs())
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestCloseWritesMetricsTextfile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, backendMemory)
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "node", "backoffice.prom")

	app, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	seedCatalog(t, app)
	result := app.Checkout.Checkout(ctx, []string{"B01", "X99"})
	require.True(t, result.Total.Equal(decimal.NewFromInt(10)))

	_, err = os.Stat(cfg.Metrics.Textfile)
	require.True(t, os.IsNotExist(err), "written on close only")

	require.NoError(t, app.Close())
	raw, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `checkouts_total{outcome="sale"} 1`)
	assert.Contains(t, string(raw), "checkout_invalid_ids_total 1")

	require.NoError(t, app.Close(), "second close is a no-op")
}
