package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/model"
)

const patternRuleColumns = `
	id, owner, user_id, priority,
	merchant_pattern, merchant_contains,
	description_pattern, description_contains, extended_pattern,
	amount_min, amount_max, target_category,
	is_active, match_count, created_at, updated_at
`

// CreatePatternRule persists a new pattern rule and fills in its ID.
func (s *SQLiteStore) CreatePatternRule(ctx context.Context, rule *model.PatternRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePatternRule(rule); err != nil {
		return err
	}

	query := `
		INSERT INTO pattern_rules (
			owner, user_id, priority,
			merchant_pattern, merchant_contains,
			description_pattern, description_contains, extended_pattern,
			amount_min, amount_max, target_category, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		string(rule.Owner), nullString(rule.UserID), rule.Priority,
		rule.MerchantPattern, rule.MerchantContains,
		nullString(rule.DescriptionPattern), rule.DescriptionContains,
		nullString(rule.ExtendedPattern),
		decimalToNull(rule.AmountMin), decimalToNull(rule.AmountMax),
		string(rule.TargetCategory), rule.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create pattern rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get pattern rule ID: %w", err)
	}

	rule.ID = id
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	return nil
}

// GetPatternRule retrieves a pattern rule by ID.
func (s *SQLiteStore) GetPatternRule(ctx context.Context, id int64) (*model.PatternRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+patternRuleColumns+` FROM pattern_rules WHERE id = ?`, id)

	rule, err := scanPatternRule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pattern rule %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pattern rule: %w", err)
	}
	return rule, nil
}

// ActiveSystemRules returns all active system-owned rules ordered by
// priority ascending, id ascending.
func (s *SQLiteStore) ActiveSystemRules(ctx context.Context) ([]model.PatternRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.queryRules(ctx,
		`SELECT `+patternRuleColumns+`
		 FROM pattern_rules
		 WHERE is_active = 1 AND owner = ?
		 ORDER BY priority ASC, id ASC`,
		string(model.OwnerSystem))
}

// ActiveUserRules returns the active rules belonging to the given user,
// ordered by priority ascending, id ascending.
func (s *SQLiteStore) ActiveUserRules(ctx context.Context, userID string) ([]model.PatternRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	return s.queryRules(ctx,
		`SELECT `+patternRuleColumns+`
		 FROM pattern_rules
		 WHERE is_active = 1 AND owner = ? AND user_id = ?
		 ORDER BY priority ASC, id ASC`,
		string(model.OwnerUser), userID)
}

// ListPatternRules returns every rule, active or not, for auditing.
func (s *SQLiteStore) ListPatternRules(ctx context.Context) ([]model.PatternRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryRules(ctx,
		`SELECT `+patternRuleColumns+` FROM pattern_rules ORDER BY priority ASC, id ASC`)
}

// DeactivatePatternRule marks a rule inactive. Rules are never hard
// deleted, preserving the audit history of past assignments.
func (s *SQLiteStore) DeactivatePatternRule(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE pattern_rules SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate pattern rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivation: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pattern rule %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// AddMatchCounts applies accumulated match counts in one transaction.
// The increment happens in SQL, so concurrent writers from other
// processes cannot lose updates.
func (s *SQLiteStore) AddMatchCounts(ctx context.Context, counts map[int64]int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE pattern_rules SET match_count = match_count + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for ruleID, n := range counts {
		if _, err := stmt.ExecContext(ctx, n, ruleID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update match count for rule %d: %w", ruleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match counts: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryRules(ctx context.Context, query string, args ...any) ([]model.PatternRule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pattern rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.PatternRule
	for rows.Next() {
		rule, err := scanPatternRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern rule: %w", err)
		}
		result = append(result, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pattern rules: %w", err)
	}
	return result, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPatternRule(row scannable) (*model.PatternRule, error) {
	var rule model.PatternRule
	var owner, category string
	var userID, descPattern, extPattern, amountMin, amountMax sql.NullString

	err := row.Scan(
		&rule.ID, &owner, &userID, &rule.Priority,
		&rule.MerchantPattern, &rule.MerchantContains,
		&descPattern, &rule.DescriptionContains, &extPattern,
		&amountMin, &amountMax, &category,
		&rule.IsActive, &rule.MatchCount, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Owner = model.RuleOwner(owner)
	rule.UserID = userID.String
	rule.DescriptionPattern = descPattern.String
	rule.ExtendedPattern = extPattern.String
	rule.TargetCategory = model.Category(category)

	if rule.AmountMin, err = nullToDecimal(amountMin); err != nil {
		return nil, fmt.Errorf("invalid amount_min for rule %d: %w", rule.ID, err)
	}
	if rule.AmountMax, err = nullToDecimal(amountMax); err != nil {
		return nil, fmt.Errorf("invalid amount_max for rule %d: %w", rule.ID, err)
	}

	return &rule, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func decimalToNull(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullToDecimal(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
