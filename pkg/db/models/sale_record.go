package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is the trace of one completed checkout. It is kept in memory for
// reporting and never mutated.
type SaleRecord struct {
	ID         uuid.UUID       `json:"id"`
	ProductIDs []string        `json:"product_ids"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}
