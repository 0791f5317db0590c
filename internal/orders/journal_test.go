package orders

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJournal(t *testing.T) (*Journal, *journal.File) {
	t.Helper()
	file := journal.NewFile(filepath.Join(t.TempDir(), "Order.txt"))
	j, err := NewJournal(file, nil)
	require.NoError(t, err)
	return j, file
}

func TestPlaceOrderAndTrack(t *testing.T) {
	ctx := context.Background()
	j, file := newJournal(t)

	placed, err := j.PlaceOrder(ctx, "Aina", []string{"Nasi Lemak", "Teh Tarik"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), placed.ID)
	assert.Equal(t, placed.ID+" | Aina | Nasi Lemak, Teh Tarik | Pending", placed.Line)

	lines, err := file.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{placed.Line}, lines)

	tracked, err := j.TrackByID(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aina", tracked.CustomerName)
	assert.Equal(t, []string{"Nasi Lemak", "Teh Tarik"}, tracked.Items)
	assert.Equal(t, StatusPending, tracked.Status)
}

func TestTrackByIDMatchesPrefix(t *testing.T) {
	ctx := context.Background()
	j, file := newJournal(t)
	require.NoError(t, file.Append("ABCD1234 | Ben | Roti | Pending"))

	tracked, err := j.TrackByID(ctx, "ABCD")
	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", tracked.ID)
}

func TestTrackByIDErrors(t *testing.T) {
	ctx := context.Background()
	j, file := newJournal(t)

	_, err := j.TrackByID(ctx, " ")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeEmptyIdentifier))

	_, err = j.TrackByID(ctx, "NOPE0000")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "missing journal reads as not found")

	require.NoError(t, file.Append("ABCD1234 | Ben | Roti | Pending"))
	_, err = j.TrackByID(ctx, "NOPE0000")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

func TestPlaceOrderValidation(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t)

	_, err := j.PlaceOrder(ctx, "", []string{"Roti"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeEmptyName))

	_, err = j.PlaceOrder(ctx, "Ben", nil)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeEmptyField))

	_, err = j.PlaceOrder(ctx, "Ben | Admin", []string{"Roti"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeMalformedDetails))
}

func TestPlaceOrderCodeFailure(t *testing.T) {
	j, _ := newJournal(t)
	j.newCode = func() (string, error) { return "", errors.New("entropy exhausted") }

	_, err := j.PlaceOrder(context.Background(), "Ben", []string{"Roti"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInternal))
}

func TestPlaceOrderRejectsLineBreakingText(t *testing.T) {
	ctx := context.Background()
	j, file := newJournal(t)

	cases := []struct {
		name     string
		customer string
		items    []string
		code     pkgerrors.Code
	}{
		{name: "newline in name", customer: "Bob\nEVIL", items: []string{"B01"}, code: pkgerrors.CodeMalformedDetails},
		{name: "carriage return in item", customer: "Bob", items: []string{"B0\r1"}, code: pkgerrors.CodeMalformedDetails},
		{name: "pipe in item", customer: "Bob", items: []string{"Roti|Canai"}, code: pkgerrors.CodeMalformedDetails},
		{name: "comma in item", customer: "Bob", items: []string{"Latte, large"}, code: pkgerrors.CodeMalformedDetails},
		{name: "blank item", customer: "Bob", items: []string{"Roti", " "}, code: pkgerrors.CodeEmptyField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := j.PlaceOrder(ctx, tc.customer, tc.items)
			require.Error(t, err)
			assert.True(t, pkgerrors.Is(err, tc.code), "got %v", err)
			assert.True(t, pkgerrors.IsValidation(err))
			assert.False(t, pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable))
		})
	}

	_, err := file.Lines()
	assert.True(t, errors.Is(err, journal.ErrNotExist), "nothing should have been written")
}

func TestPlaceOrderItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t)

	placed, err := j.PlaceOrder(ctx, "Aina", []string{" Latte large ", "Kaya Toast"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Latte large", "Kaya Toast"}, placed.Items)

	tracked, err := j.TrackByID(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.Items, tracked.Items)
	assert.Equal(t, placed.Line, tracked.Line)
}
