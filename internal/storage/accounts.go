package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quillback/spendsort/internal/common"
)

// Account links an external account reference to its owning user.
type Account struct {
	ID          string
	UserID      string
	Name        string
	Institution string
}

// UpsertAccount creates or updates an account mapping.
func (s *SQLiteStore) UpsertAccount(ctx context.Context, account Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(account.ID, "account.ID"); err != nil {
		return err
	}
	if err := validateString(account.UserID, "account.UserID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, institution)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			institution = excluded.institution
	`, account.ID, account.UserID, account.Name, account.Institution)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

// AccountOwner returns the user owning the given account. Unknown
// accounts return an error wrapping common.ErrNotFound, which the engine
// records as a per-transaction resolution failure.
func (s *SQLiteStore) AccountOwner(ctx context.Context, accountID string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return "", err
	}

	var userID string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM accounts WHERE id = ?`, accountID).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("account %q: %w", accountID, common.ErrNotFound)
		}
		return "", fmt.Errorf("failed to look up account owner: %w", err)
	}
	return userID, nil
}

// ListAccounts returns all known accounts.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, institution FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []Account
	for rows.Next() {
		var a Account
		var name, institution sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &name, &institution); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Name = name.String
		a.Institution = institution.String
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}
