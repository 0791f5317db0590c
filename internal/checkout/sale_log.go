package checkout

import (
	"sync"

	"github.com/angelmondragon/backoffice/pkg/db/models"
)

// SaleLog is the append-only, process-lifetime record of completed sales.
type SaleLog struct {
	mu      sync.RWMutex
	records []models.SaleRecord
}

func NewSaleLog() *SaleLog {
	return &SaleLog{}
}

func (l *SaleLog) Append(record models.SaleRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	record.ProductIDs = append([]string(nil), record.ProductIDs...)
	l.records = append(l.records, record)
}

// Records returns copies in sale order.
func (l *SaleLog) Records() []models.SaleRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.SaleRecord, len(l.records))
	for i, r := range l.records {
		r.ProductIDs = append([]string(nil), r.ProductIDs...)
		out[i] = r
	}
	return out
}

func (l *SaleLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
