package currency_test

import (
	"testing"

	"github.com/campuspay/backend/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidFormat(t *testing.T) {
	assert.True(t, currency.IsValidFormat("INR"))
	assert.True(t, currency.IsValidFormat("USD"))
	assert.False(t, currency.IsValidFormat("inr"))
	assert.False(t, currency.IsValidFormat("IN"))
	assert.False(t, currency.IsValidFormat("INRR"))
	assert.False(t, currency.IsValidFormat("IN1"))
	assert.False(t, currency.IsValidFormat(""))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, currency.IsSupported("INR"))
	assert.True(t, currency.IsSupported("USD"))
	assert.False(t, currency.IsSupported("JPY"))
}

func TestGet(t *testing.T) {
	meta, err := currency.Get("INR")
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Decimals)
	assert.Equal(t, "₹", meta.Symbol)

	_, err = currency.Get("JPY")
	assert.Error(t, err)

	_, err = currency.Get("bad")
	assert.Error(t, err)
}
