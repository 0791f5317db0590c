package checkout

import (
	"context"
	"testing"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddRemove(t *testing.T) {
	cart := NewCart(sampleCatalog())

	require.NoError(t, cart.Add("A"))
	require.NoError(t, cart.Add(" B "))
	assert.Equal(t, []string{"A", "B"}, cart.Items())

	err := cart.Add("A")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDuplicateKey))
	err = cart.Add("  ")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeEmptyIdentifier))
	err = cart.Add("Z")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnknownProduct))

	require.NoError(t, cart.Remove("A"))
	err = cart.Remove("A")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Equal(t, 1, cart.Len())

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
}

func TestCheckoutCart(t *testing.T) {
	p := newProcessor(t, fakePricer{})
	cart := NewCart(sampleCatalog())

	_, err := p.CheckoutCart(context.Background(), cart)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeEmptyField))

	require.NoError(t, cart.Add("A"))
	require.NoError(t, cart.Add("B"))
	result, err := p.CheckoutCart(context.Background(), cart)
	require.NoError(t, err)
	assert.True(t, result.Total.Equal(d("14.5")))
	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, 1, p.Sales().Len())
}
