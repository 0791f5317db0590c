package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/journal"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/security"
)

const (
	orderCodeLength = 8
	fieldSeparator  = " | "
	itemSeparator   = ", "
)

// PlacedOrder is one customer order line from the journal.
type PlacedOrder struct {
	ID           string
	CustomerName string
	Items        []string
	Status       string
	Line         string
}

type lineJournal interface {
	Append(line string) error
	FindPrefix(prefix string) (string, bool, error)
}

// Journal is the customer facing order log. Entries are appended once and
// looked up by order id.
type Journal struct {
	lines   lineJournal
	newCode func() (string, error)
	logg    *logger.Logger
}

func NewJournal(lines lineJournal, logg *logger.Logger) (*Journal, error) {
	if lines == nil {
		return nil, errors.New("order journal required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Journal{
		lines:   lines,
		newCode: func() (string, error) { return security.GenerateOrderCode(orderCodeLength) },
		logg:    logg,
	}, nil
}

// PlaceOrder assigns a fresh order id and appends a Pending entry.
func (j *Journal) PlaceOrder(ctx context.Context, customerName string, items []string) (*PlacedOrder, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyName, "customer name is required")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyField, "order has no items")
	}
	if err := checkJournalField(customerName); err != nil {
		return nil, err
	}
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, pkgerrors.New(pkgerrors.CodeEmptyField, "order item cannot be blank")
		}
		if err := checkJournalField(item); err != nil {
			return nil, err
		}
		if strings.Contains(item, ",") {
			return nil, pkgerrors.Newf(pkgerrors.CodeMalformedDetails, "item %q contains the item separator", item)
		}
		cleaned = append(cleaned, item)
	}

	id, err := j.newCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order id")
	}
	order := &PlacedOrder{
		ID:           id,
		CustomerName: customerName,
		Items:        cleaned,
		Status:       StatusPending,
	}
	order.Line = formatLine(order)

	if err := j.lines.Append(order.Line); err != nil {
		j.logg.Error(j.logg.WithStore(ctx, "order_journal"), "append order", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "save order")
	}
	j.logg.Info(j.logg.WithField(ctx, "order_id", id), "order placed")
	return order, nil
}

// TrackByID returns the first journal entry whose line starts with id.
func (j *Journal) TrackByID(ctx context.Context, id string) (*PlacedOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyIdentifier, "order id is required")
	}
	line, ok, err := j.lines.FindPrefix(id)
	if err != nil {
		if errors.Is(err, journal.ErrNotExist) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("order %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "read order journal")
	}
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "order %s not found", id)
	}
	return parseLine(line), nil
}

// checkJournalField rejects text that would split a journal line.
func checkJournalField(field string) error {
	if strings.ContainsAny(field, "\r\n") {
		return pkgerrors.Newf(pkgerrors.CodeMalformedDetails, "%q spans more than one line", field)
	}
	if strings.Contains(field, "|") {
		return pkgerrors.Newf(pkgerrors.CodeMalformedDetails, "%q contains the field separator", field)
	}
	return nil
}

func formatLine(o *PlacedOrder) string {
	return strings.Join([]string{o.ID, o.CustomerName, strings.Join(o.Items, itemSeparator), o.Status}, fieldSeparator)
}

// parseLine is lenient: lines written by hand may lack trailing fields.
func parseLine(line string) *PlacedOrder {
	parts := strings.Split(line, fieldSeparator)
	order := &PlacedOrder{ID: strings.TrimSpace(parts[0]), Line: line}
	if len(parts) > 1 {
		order.CustomerName = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		for _, item := range strings.Split(parts[2], strings.TrimSpace(itemSeparator)) {
			order.Items = append(order.Items, strings.TrimSpace(item))
		}
	}
	if len(parts) > 3 {
		order.Status = strings.TrimSpace(parts[3])
	}
	return order
}
