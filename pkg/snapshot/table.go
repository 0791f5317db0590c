package snapshot

import (
	"context"
	"fmt"

	"github.com/angelmondragon/backoffice/pkg/db"
	"gorm.io/gorm"
)

// Sequenced rows carry their position in the collection so a table
// snapshot can be read back in insertion order.
type Sequenced interface {
	SetSequence(seq int)
}

// Table stores the collection as rows of a SQL table, rewritten in one
// transaction on every save.
type Table[T any, PT interface {
	*T
	Sequenced
}] struct {
	client    *db.Client
	batchSize int
}

func NewTable[T any, PT interface {
	*T
	Sequenced
}](client *db.Client) *Table[T, PT] {
	return &Table[T, PT]{client: client, batchSize: 100}
}

func (t *Table[T, PT]) Load(ctx context.Context) ([]T, error) {
	var rows []T
	if err := t.client.DB().WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select rows: %w", err)
	}
	return rows, nil
}

func (t *Table[T, PT]) Save(ctx context.Context, items []T) error {
	rows := make([]T, len(items))
	copy(rows, items)
	for i := range rows {
		PT(&rows[i]).SetSequence(i + 1)
	}

	return t.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(PT(new(T))).Error; err != nil {
			return fmt.Errorf("clear rows: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, t.batchSize).Error; err != nil {
			return fmt.Errorf("insert rows: %w", err)
		}
		return nil
	})
}
