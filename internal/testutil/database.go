// Package testutil provides shared helpers for storage-backed tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quillback/spendsort/internal/model"
	"github.com/quillback/spendsort/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store and registers
// cleanup on the test.
func SetupTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedAccount registers an account owned by userID, failing the test on error.
func SeedAccount(t *testing.T, store *storage.SQLiteStore, accountID, userID string) {
	t.Helper()

	err := store.UpsertAccount(context.Background(), storage.Account{
		ID:     accountID,
		UserID: userID,
		Name:   "Test Account",
	})
	if err != nil {
		t.Fatalf("failed to seed account %q: %v", accountID, err)
	}
}

// TxnOption customizes a fixture transaction.
type TxnOption func(*model.Transaction)

// WithAmount sets the transaction amount from a decimal string.
func WithAmount(s string) TxnOption {
	return func(txn *model.Transaction) {
		txn.Amount = decimal.RequireFromString(s)
	}
}

// WithMerchant sets the merchant name.
func WithMerchant(name string) TxnOption {
	return func(txn *model.Transaction) {
		txn.Merchant = name
	}
}

// WithProviderLabels sets the provider taxonomy labels.
func WithProviderLabels(primary, secondary, code string) TxnOption {
	return func(txn *model.Transaction) {
		txn.ProviderPrimary = primary
		txn.ProviderSecondary = secondary
		txn.ProviderCode = code
	}
}

// WithDescription sets the short description.
func WithDescription(desc string) TxnOption {
	return func(txn *model.Transaction) {
		txn.Description = desc
	}
}

// NewTransaction builds a fixture transaction with sensible defaults.
func NewTransaction(id, accountID string, opts ...TxnOption) model.Transaction {
	txn := model.Transaction{
		ID:        id,
		AccountID: accountID,
		Date:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Merchant:  "Test Merchant",
		Amount:    decimal.RequireFromString("42.00"),
		Currency:  "USD",
		Source:    "test",
	}
	for _, opt := range opts {
		opt(&txn)
	}
	txn.Hash = txn.GenerateHash()
	return txn
}
