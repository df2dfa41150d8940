package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSource identifies where a transaction was ingested from.
type TransactionSource string

// Transaction source constants.
const (
	SourceCSV      TransactionSource = "csv"
	SourceOFX      TransactionSource = "ofx"
	SourceProvider TransactionSource = "provider"
)

// Transaction represents a single financial transaction from any source.
// The engine treats it as read-only; it is created by the import/sync
// collaborators and never mutated during categorization.
type Transaction struct {
	Date                time.Time
	ID                  string
	AccountID           string
	Merchant            string // Cleaned merchant name
	Description         string // Raw transaction description
	ExtendedDescription string // Memo / additional detail, when the source provides one
	Currency            string
	Hash                string

	// Provider-supplied category hints. Any subset may be empty.
	ProviderPrimary   string // e.g. "Food and Drink"
	ProviderSecondary string // e.g. "Restaurants"
	ProviderCode      string // opaque provider category code

	Source  TransactionSource
	Amount  decimal.Decimal // signed; negative for credits on some sources
	Pending bool
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.String(),
		t.Merchant,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// MerchantName returns the merchant name and whether one is present.
func (t Transaction) MerchantName() (string, bool) {
	if s := strings.TrimSpace(t.Merchant); s != "" {
		return s, true
	}
	return "", false
}

// DescriptionText returns the free-text description and whether one is present.
func (t Transaction) DescriptionText() (string, bool) {
	if s := strings.TrimSpace(t.Description); s != "" {
		return s, true
	}
	return "", false
}

// ExtendedText returns the extended description and whether one is present.
func (t Transaction) ExtendedText() (string, bool) {
	if s := strings.TrimSpace(t.ExtendedDescription); s != "" {
		return s, true
	}
	return "", false
}

// AbsAmount returns the unsigned transaction amount. All rule predicates
// compare magnitudes; direction is not a matching signal.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// HasProviderPrimary reports whether the provider supplied a primary label.
func (t Transaction) HasProviderPrimary() bool {
	return strings.TrimSpace(t.ProviderPrimary) != ""
}

// HasProviderSecondary reports whether the provider supplied a secondary label.
func (t Transaction) HasProviderSecondary() bool {
	return strings.TrimSpace(t.ProviderSecondary) != ""
}

// HasProviderCode reports whether the provider supplied a category code.
func (t Transaction) HasProviderCode() bool {
	return strings.TrimSpace(t.ProviderCode) != ""
}

// HasMerchant reports whether a merchant name is present.
func (t Transaction) HasMerchant() bool {
	_, ok := t.MerchantName()
	return ok
}
