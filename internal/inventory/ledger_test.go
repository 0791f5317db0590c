package inventory

import (
	"context"
	"math"
	"testing"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
)

func newLedger(t *testing.T) (*Ledger, *snapshot.Memory[models.InventoryItem]) {
	t.Helper()
	snap := snapshot.NewMemory[models.InventoryItem]()
	ledger, err := NewLedger(snap, nil)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return ledger, snap
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if !pkgerrors.Is(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)

	if err := ledger.AddItem(ctx, "milk", 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	expectCode(t, ledger.AddItem(ctx, "milk", 9), pkgerrors.CodeDuplicateKey)
	if qty, _ := ledger.Quantity("milk"); qty != 5 {
		t.Fatalf("duplicate add must not mutate, got %d", qty)
	}

	expectCode(t, ledger.AddItem(ctx, "  ", 1), pkgerrors.CodeEmptyName)
	expectCode(t, ledger.AddItem(ctx, "sugar", 0), pkgerrors.CodeInvalidQuantity)
	expectCode(t, ledger.AddItem(ctx, "sugar", -3), pkgerrors.CodeInvalidQuantity)
	if _, ok := ledger.Quantity("sugar"); ok {
		t.Fatal("rejected item must not be stored")
	}
}

func TestIncrementAndSetQuantity(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	_ = ledger.AddItem(ctx, "milk", 5)

	qty, err := ledger.IncrementQuantity(ctx, "milk", 3)
	if err != nil || qty != 8 {
		t.Fatalf("expected 8, got %d (%v)", qty, err)
	}
	_, err = ledger.IncrementQuantity(ctx, "flour", 3)
	expectCode(t, err, pkgerrors.CodeNotFound)
	_, err = ledger.IncrementQuantity(ctx, "milk", 0)
	expectCode(t, err, pkgerrors.CodeInvalidQuantity)

	if err := ledger.SetQuantity(ctx, "milk", 2); err != nil {
		t.Fatalf("set: %v", err)
	}
	if qty, _ := ledger.Quantity("milk"); qty != 2 {
		t.Fatalf("expected 2, got %d", qty)
	}
	expectCode(t, ledger.SetQuantity(ctx, "flour", 2), pkgerrors.CodeNotFound)
	expectCode(t, ledger.SetQuantity(ctx, "milk", 0), pkgerrors.CodeInvalidQuantity)
}

func TestIncrementQuantityRejectsOverflow(t *testing.T) {
	ctx := context.Background()
	ledger, snap := newLedger(t)
	if err := ledger.AddItem(ctx, "milk", math.MaxInt); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := ledger.IncrementQuantity(ctx, "milk", 1)
	expectCode(t, err, pkgerrors.CodeInvalidQuantity)
	if qty, _ := ledger.Quantity("milk"); qty != math.MaxInt {
		t.Fatalf("quantity changed to %d", qty)
	}
	saved, _ := snap.Load(ctx)
	if len(saved) != 1 || saved[0].Quantity != math.MaxInt {
		t.Fatalf("unexpected saved items %+v", saved)
	}

	if err := ledger.SetQuantity(ctx, "milk", math.MaxInt-1); err != nil {
		t.Fatalf("set: %v", err)
	}
	qty, err := ledger.IncrementQuantity(ctx, "milk", 1)
	if err != nil || qty != math.MaxInt {
		t.Fatalf("expected max int, got %d (%v)", qty, err)
	}
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	ledger, snap := newLedger(t)
	_ = ledger.AddItem(ctx, "milk", 5)
	_ = ledger.AddItem(ctx, "eggs", 12)

	if err := ledger.RemoveItem(ctx, "milk"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	expectCode(t, ledger.RemoveItem(ctx, "milk"), pkgerrors.CodeNotFound)

	saved, err := snap.Load(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(saved) != 1 || saved[0].Name != "eggs" {
		t.Fatalf("unexpected snapshot %+v", saved)
	}
}

func TestListSortedAndReload(t *testing.T) {
	ctx := context.Background()
	ledger, snap := newLedger(t)
	for _, name := range []string{"sugar", "eggs", "milk"} {
		_ = ledger.AddItem(ctx, name, 1)
	}

	list := ledger.List()
	if len(list) != 3 || list[0].Name != "eggs" || list[1].Name != "milk" || list[2].Name != "sugar" {
		t.Fatalf("expected sorted list, got %+v", list)
	}

	reloaded, err := NewLedger(snap, nil)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if qty, ok := reloaded.Quantity("milk"); !ok || qty != 1 {
		t.Fatalf("expected milk=1 after reload, got %d", qty)
	}
}

func TestParseQuantity(t *testing.T) {
	if qty, err := ParseQuantity(" 7 "); err != nil || qty != 7 {
		t.Fatalf("expected 7, got %d (%v)", qty, err)
	}
	_, err := ParseQuantity("seven")
	expectCode(t, err, pkgerrors.CodeInvalidNumeric)
	_, err = ParseQuantity("-1")
	expectCode(t, err, pkgerrors.CodeInvalidQuantity)
}
