package models

import (
	"time"

	"github.com/angelmondragon/backoffice/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry records one immutable income or expense movement.
type LedgerEntry struct {
	Seq       int                   `gorm:"column:seq;primaryKey;autoIncrement:false" json:"-"`
	ID        uuid.UUID             `gorm:"column:id;not null;uniqueIndex" json:"id"`
	Type      enums.LedgerEntryType `gorm:"column:type;not null" json:"type"`
	Amount    decimal.Decimal       `gorm:"column:amount;type:numeric;not null" json:"amount"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }

func (e *LedgerEntry) SetSequence(seq int) { e.Seq = seq }
