package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "100.00", FormatCents(10000))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "12.30", FormatCents(1230))
}

func TestAmountDisplay_UsesFormatCents(t *testing.T) {
	txn := SubscriptionTransaction{AmountCents: 10000}
	assert.Equal(t, FormatCents(txn.AmountCents), txn.AmountDisplay())
}
