// Package plaid provides a client for the account-aggregation provider.
// It is a data source only: it produces transactions carrying the
// provider's category labels, which the engine consumes downstream.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/shopspring/decimal"

	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/model"
)

// Config holds provider API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret", common.ErrMissingConfig)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("%w: plaid access token", common.ErrMissingConfig)
	}
	switch c.Environment {
	case "sandbox", "production":
		return nil
	default:
		return fmt.Errorf("%w: plaid environment must be sandbox or production", common.ErrInvalidConfig)
	}
}

// Client fetches transactions and accounts from the provider.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	retryOpts   common.RetryOptions
	accessToken string
}

// NewClient creates a new provider client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// GetTransactions fetches transactions within the date range, paginating
// until the provider reports no more.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	c.logger.Info("Fetching transactions from provider",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var all []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // provider's max page size

	for {
		var page []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				c.accessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			options := plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			}
			request.SetOptions(options)

			resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				if plaidError := extractPlaidError(err); plaidError != nil {
					if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
						c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
						return &common.RetryableError{Err: err, Retryable: true}
					}
					return fmt.Errorf("provider API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
				}
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}

			page = resp.GetTransactions()
			return nil
		}, c.retryOpts)

		if retryErr != nil {
			return nil, retryErr
		}

		all = append(all, page...)

		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(all))

	transactions := make([]model.Transaction, 0, len(all))
	for _, pt := range all {
		transactions = append(transactions, c.mapTransaction(pt))
	}
	return transactions, nil
}

// Account is a provider account reference.
type Account struct {
	ID   string
	Name string
}

// GetAccounts fetches the accounts reachable with the access token.
func (c *Client) GetAccounts(ctx context.Context) ([]Account, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	var accounts []plaid.AccountBase
	retryErr := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(c.accessToken)
		resp, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			if plaidError := extractPlaidError(err); plaidError != nil {
				if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
					return &common.RetryableError{Err: err, Retryable: true}
				}
				return fmt.Errorf("provider API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
			}
			return fmt.Errorf("failed to fetch accounts: %w", err)
		}
		accounts = resp.GetAccounts()
		return nil
	}, c.retryOpts)

	if retryErr != nil {
		return nil, retryErr
	}

	result := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, Account{ID: a.GetAccountId(), Name: a.GetName()})
	}
	return result, nil
}

// mapTransaction converts a provider transaction to the engine model.
// The legacy category hierarchy supplies the primary/secondary labels and
// the opaque code; the newer personal-finance-category fields fill any
// gaps.
func (c *Client) mapTransaction(pt plaid.Transaction) model.Transaction {
	date, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		c.logger.Error("Failed to parse transaction date", "date", pt.GetDate(), "error", err)
		date = time.Now()
	}

	merchant := pt.GetMerchantName()
	if merchant == "" {
		merchant = pt.GetName()
	}
	merchant = cleanMerchantName(merchant)

	var primary, secondary string
	if categories := pt.GetCategory(); len(categories) > 0 {
		primary = categories[0]
		if len(categories) > 1 {
			secondary = categories[1]
		}
	}
	if pfc, ok := pt.GetPersonalFinanceCategoryOk(); ok {
		if primary == "" {
			primary = pfc.GetPrimary()
		}
		if secondary == "" {
			secondary = pfc.GetDetailed()
		}
	}

	currency := pt.GetIsoCurrencyCode()
	if currency == "" {
		currency = pt.GetUnofficialCurrencyCode()
	}

	tx := model.Transaction{
		Date:              date,
		ID:                pt.GetTransactionId(),
		AccountID:         pt.GetAccountId(),
		Merchant:          merchant,
		Description:       pt.GetName(),
		Currency:          currency,
		ProviderPrimary:   primary,
		ProviderSecondary: secondary,
		ProviderCode:      pt.GetCategoryId(),
		Amount:            decimal.NewFromFloat(pt.GetAmount()),
		Pending:           pt.GetPending(),
		Source:            model.SourceProvider,
	}
	tx.Hash = tx.GenerateHash()
	return tx
}

// cleanMerchantName strips trailing reference numbers and collapses
// whitespace.
func cleanMerchantName(name string) string {
	parts := strings.Fields(name)
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if len(last) > 5 && isAllDigits(last) {
			parts = parts[:len(parts)-1]
		}
	}
	return strings.Join(parts, " ")
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func extractPlaidError(err error) *plaid.PlaidError {
	if plaidErr, convErr := plaid.ToPlaidError(err); convErr == nil {
		return &plaidErr
	}
	return nil
}
