package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quillback/spendsort/internal/model"
)

const transactionColumns = `
	id, hash, date, account_id, merchant, description, extended_description,
	amount, currency, provider_primary, provider_secondary, provider_code,
	pending, source
`

// SaveTransactions stores imported transactions, skipping duplicates by
// hash. Amounts are stored as exact decimal strings.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		_, err = stmt.ExecContext(ctx,
			txn.ID, txn.Hash, txn.Date, txn.AccountID,
			txn.Merchant, txn.Description, txn.ExtendedDescription,
			txn.Amount.String(), txn.Currency,
			txn.ProviderPrimary, txn.ProviderSecondary, txn.ProviderCode,
			txn.Pending, string(txn.Source),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}
	return nil
}

// TransactionsToCategorize returns transactions that have no category
// assignment yet, oldest first.
func (s *SQLiteStore) TransactionsToCategorize(ctx context.Context, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE NOT EXISTS (
			SELECT 1 FROM category_assignments a WHERE a.transaction_id = t.id
		)
		ORDER BY date ASC, id ASC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return s.queryTransactions(ctx, query, args...)
}

// TransactionsByAccount returns all transactions for one account.
func (s *SQLiteStore) TransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}

	return s.queryTransactions(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE account_id = ? ORDER BY date ASC, id ASC`,
		accountID)
}

func (s *SQLiteStore) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		result = append(result, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return result, nil
}

func scanTransaction(row scannable) (*model.Transaction, error) {
	var txn model.Transaction
	var merchant, description, extended, currency sql.NullString
	var primary, secondary, code, source sql.NullString
	var amount string

	err := row.Scan(
		&txn.ID, &txn.Hash, &txn.Date, &txn.AccountID,
		&merchant, &description, &extended,
		&amount, &currency, &primary, &secondary, &code,
		&txn.Pending, &source,
	)
	if err != nil {
		return nil, err
	}

	txn.Merchant = merchant.String
	txn.Description = description.String
	txn.ExtendedDescription = extended.String
	txn.Currency = currency.String
	txn.ProviderPrimary = primary.String
	txn.ProviderSecondary = secondary.String
	txn.ProviderCode = code.String
	txn.Source = model.TransactionSource(source.String)

	if txn.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid amount for transaction %s: %w", txn.ID, err)
	}

	return &txn, nil
}
