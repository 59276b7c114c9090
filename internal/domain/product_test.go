package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductTotalValue(t *testing.T) {
	p := &Product{Price: 19.99, Quantity: 3}
	assert.InDelta(t, 59.97, p.TotalValue(), 1e-9)

	p.Quantity = 0
	assert.Zero(t, p.TotalValue())
}

func TestValidateProduct(t *testing.T) {
	require.NoError(t, ValidateProduct("Widget", 9.99, 5, "sup-1"))

	var ve *ValidationError

	err := ValidateProduct("", -1, -2, "")
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "price")
	assert.Contains(t, ve.Fields, "quantity")
	assert.Contains(t, ve.Fields, "supplier")
}

func TestValidateSupplier(t *testing.T) {
	require.NoError(t, ValidateSupplier("Acme", "1 Main St", "555-0100"))

	var ve *ValidationError
	err := ValidateSupplier("", "", "nope")
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "address")
	assert.Contains(t, ve.Fields, "phone")
}
