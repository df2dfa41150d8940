package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateHash(t *testing.T) {
	base := Transaction{
		Date:      time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		AccountID: "acc-1",
		Merchant:  "Chipotle",
		Amount:    decimal.RequireFromString("12.50"),
	}

	t.Run("deterministic", func(t *testing.T) {
		a, b := base, base
		assert.Equal(t, a.GenerateHash(), b.GenerateHash())
	})

	t.Run("ignores time of day", func(t *testing.T) {
		other := base
		other.Date = time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("differs by amount", func(t *testing.T) {
		other := base
		other.Amount = decimal.RequireFromString("12.51")
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("differs by account", func(t *testing.T) {
		other := base
		other.AccountID = "acc-2"
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})
}

func TestCapabilityAccessors(t *testing.T) {
	txn := Transaction{
		Merchant:            "  Chipotle  ",
		Description:         "POS PURCHASE",
		ExtendedDescription: "",
	}

	merchant, ok := txn.MerchantName()
	assert.True(t, ok)
	assert.Equal(t, "Chipotle", merchant)

	desc, ok := txn.DescriptionText()
	assert.True(t, ok)
	assert.Equal(t, "POS PURCHASE", desc)

	_, ok = txn.ExtendedText()
	assert.False(t, ok)

	empty := Transaction{Merchant: "   "}
	_, ok = empty.MerchantName()
	assert.False(t, ok)
	assert.False(t, empty.HasMerchant())
}

func TestAbsAmount(t *testing.T) {
	debit := Transaction{Amount: decimal.RequireFromString("-55.20")}
	credit := Transaction{Amount: decimal.RequireFromString("55.20")}
	assert.True(t, debit.AbsAmount().Equal(credit.AbsAmount()))
	assert.Equal(t, "55.2", debit.AbsAmount().String())
}

func TestProviderSignalPredicates(t *testing.T) {
	txn := Transaction{
		ProviderPrimary:   "Food and Drink",
		ProviderSecondary: " ",
		ProviderCode:      "13005000",
	}
	assert.True(t, txn.HasProviderPrimary())
	assert.False(t, txn.HasProviderSecondary())
	assert.True(t, txn.HasProviderCode())
}

func TestCategoryIsUncategorized(t *testing.T) {
	assert.True(t, CategoryUncategorized.IsUncategorized())
	assert.True(t, Category("").IsUncategorized())
	assert.False(t, CategoryGroceries.IsUncategorized())
}

func TestUncategorizedAssignment(t *testing.T) {
	a := Uncategorized("txn-1", TierNone)
	assert.Equal(t, "txn-1", a.TransactionID)
	assert.Equal(t, CategoryUncategorized, a.Category)
	assert.Equal(t, MatchedByUncategorized, a.MatchedBy)
	assert.False(t, a.Failed())
}
