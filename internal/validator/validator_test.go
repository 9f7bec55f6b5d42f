package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testQuery struct {
	Ordering string `validate:"omitempty,oneof=price -price -created_at"`
	Name     string `validate:"required"`
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(testQuery{Ordering: "-price", Name: "x"}))
	assert.NoError(t, Validate(testQuery{Name: "x"}))
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(testQuery{Ordering: "name", Name: "x"})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, valErr.Error(), "must be one of")
	assert.Contains(t, valErr.Fields(), "Ordering")
}

func TestValidate_Required(t *testing.T) {
	err := Validate(testQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is required")
}
