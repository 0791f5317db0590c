// Package finance tracks income and expense movements and derives profit
// from them.
package finance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	"github.com/angelmondragon/backoffice/pkg/enums"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/money"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const storeName = "finance"

// Totals are the running sums of every recorded entry.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Profit is income minus expenses and may be negative.
func (t Totals) Profit() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

type Ledger struct {
	mu      sync.RWMutex
	entries []models.LedgerEntry
	totals  Totals
	snap    snapshot.Store[models.LedgerEntry]
	logg    *logger.Logger
	now     func() time.Time
}

func NewLedger(snap snapshot.Store[models.LedgerEntry], logg *logger.Logger) (*Ledger, error) {
	if snap == nil {
		return nil, errors.New("finance snapshot required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Ledger{
		entries: []models.LedgerEntry{},
		totals:  Totals{Income: decimal.Zero, Expenses: decimal.Zero},
		snap:    snap,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Load restores entries and rebuilds the totals from them. Entries with an
// unknown type are skipped.
func (l *Ledger) Load(ctx context.Context) error {
	entries, err := snapshot.LoadOrEmpty(ctx, l.snap, storeName)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = entries
	l.totals = Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, entry := range entries {
		l.applyLocked(entry)
	}
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		l.logg.Warn(l.logg.WithStore(ctx, storeName), "ledger unavailable, starting from zero")
		return err
	}
	return nil
}

func (l *Ledger) AddIncome(ctx context.Context, amount decimal.Decimal) (*models.LedgerEntry, error) {
	return l.record(ctx, enums.LedgerEntryTypeIncome, amount)
}

func (l *Ledger) AddExpense(ctx context.Context, amount decimal.Decimal) (*models.LedgerEntry, error) {
	return l.record(ctx, enums.LedgerEntryTypeExpense, amount)
}

// AddIncomeString parses caller text before recording it as income.
func (l *Ledger) AddIncomeString(ctx context.Context, raw string) (*models.LedgerEntry, error) {
	amount, err := money.ParseAmount(raw)
	if err != nil {
		return nil, err
	}
	return l.AddIncome(ctx, amount)
}

func (l *Ledger) AddExpenseString(ctx context.Context, raw string) (*models.LedgerEntry, error) {
	amount, err := money.ParseAmount(raw)
	if err != nil {
		return nil, err
	}
	return l.AddExpense(ctx, amount)
}

func (l *Ledger) Totals() Totals {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totals
}

func (l *Ledger) Profit() decimal.Decimal {
	return l.Totals().Profit()
}

// Entries returns recorded movements oldest first.
func (l *Ledger) Entries() []models.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.LedgerEntry{}, l.entries...)
}

func (l *Ledger) record(ctx context.Context, entryType enums.LedgerEntryType, amount decimal.Decimal) (*models.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidAmount, "%s amount %s must be positive", entryType, amount.String())
	}
	entry := models.LedgerEntry{
		ID:        uuid.New(),
		Type:      entryType,
		Amount:    amount,
		CreatedAt: l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	l.applyLocked(entry)

	if err := snapshot.SaveErr(l.snap.Save(ctx, l.entries), storeName); err != nil {
		l.logg.Error(l.logg.WithStore(ctx, storeName), "save ledger", err)
		return &entry, err
	}
	return &entry, nil
}

func (l *Ledger) applyLocked(entry models.LedgerEntry) {
	switch entry.Type {
	case enums.LedgerEntryTypeIncome:
		l.totals.Income = l.totals.Income.Add(entry.Amount)
	case enums.LedgerEntryTypeExpense:
		l.totals.Expenses = l.totals.Expenses.Add(entry.Amount)
	}
}
