package backoffice

import (
	"context"

	"github.com/angelmondragon/backoffice/pkg/config"
	"github.com/angelmondragon/backoffice/pkg/db"
	"github.com/angelmondragon/backoffice/pkg/db/models"
	"github.com/angelmondragon/backoffice/pkg/enums"
	"github.com/angelmondragon/backoffice/pkg/logger"
	pkgredis "github.com/angelmondragon/backoffice/pkg/redis"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
)

const (
	backendFile   = string(enums.StorageBackendFile)
	backendSQL    = string(enums.StorageBackendSQL)
	backendRedis  = string(enums.StorageBackendRedis)
	backendMemory = string(enums.StorageBackendMemory)
)

// File names used by the file backend, relative to the data directory. The
// catalog file name is configurable.
const (
	ordersFile    = "orders.json"
	inventoryFile = "inventory.json"
	ledgerFile    = "ledger.json"
	accountsFile  = "accounts.json"
	feedbackFile  = "feedback.json"
)

type redisKV interface {
	snapshot.KV
	SnapshotKey(store string) string
}

type backend struct {
	kind    string
	storage config.StorageConfig
	db      *db.Client
	kv      redisKV
}

func dialRedis(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*pkgredis.Client, error) {
	return pkgredis.New(ctx, cfg, logg)
}

func snapshotFor[T any, PT interface {
	*T
	snapshot.Sequenced
}](b *backend, store, fileName string) snapshot.Store[T] {
	switch b.kind {
	case backendSQL:
		return snapshot.NewTable[T, PT](b.db)
	case backendRedis:
		return snapshot.NewRedis[T](b.kv, b.kv.SnapshotKey(store))
	case backendMemory:
		return snapshot.NewMemory[T]()
	default:
		return snapshot.NewFile[T](b.storage.Path(fileName))
	}
}

func productSnapshot(b *backend) snapshot.Store[models.Product] {
	return snapshotFor[models.Product](b, "catalog", b.storage.CatalogFile)
}

func orderSnapshot(b *backend) snapshot.Store[models.Order] {
	return snapshotFor[models.Order](b, "orders", ordersFile)
}

func inventorySnapshot(b *backend) snapshot.Store[models.InventoryItem] {
	return snapshotFor[models.InventoryItem](b, "inventory", inventoryFile)
}

func ledgerSnapshot(b *backend) snapshot.Store[models.LedgerEntry] {
	return snapshotFor[models.LedgerEntry](b, "finance", ledgerFile)
}

func accountSnapshot(b *backend) snapshot.Store[models.UserAccount] {
	return snapshotFor[models.UserAccount](b, "credentials", accountsFile)
}

func feedbackSnapshot(b *backend) snapshot.Store[models.Feedback] {
	return snapshotFor[models.Feedback](b, "feedback", feedbackFile)
}
