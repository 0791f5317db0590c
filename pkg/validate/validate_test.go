package validate

import (
	"testing"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name" validate:"notblank"`
	Note string `json:"note" validate:"max=5"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(pkgerrors.CodeEmptyField, sample{Name: "ok", Note: "short"}))

	err := Struct(pkgerrors.CodeEmptyField, sample{Name: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeEmptyField, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])

	err = Struct(pkgerrors.CodeEmptyField, sample{Name: "ok", Note: "too long"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidRange), "got %v", err)
}

func TestVar(t *testing.T) {
	require.NoError(t, Var(pkgerrors.CodeEmptyField, "text", "hello", "notblank,max=5"))

	err := Var(pkgerrors.CodeEmptyField, "text", " ", "notblank,max=5")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeEmptyField))
	details := pkgerrors.As(err).Details().(map[string]string)
	assert.Equal(t, "is required", details["text"])

	err = Var(pkgerrors.CodeEmptyField, "text", "héllo!", "notblank,max=5")
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeInvalidRange))
	assert.NoError(t, Var(pkgerrors.CodeEmptyField, "text", "héllo", "notblank,max=5"))
}
