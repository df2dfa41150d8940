package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/model"
)

// SaveAssignments stores a batch of category assignments in one
// transaction. Re-running a batch overwrites earlier assignments for the
// same transactions: categorization is idempotent, so last write wins.
func (s *SQLiteStore) SaveAssignments(ctx context.Context, assignments []model.CategoryAssignment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAssignments(assignments); err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO category_assignments (transaction_id, category, matched_by, tier, rule_id, error, assigned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(transaction_id) DO UPDATE SET
			category = excluded.category,
			matched_by = excluded.matched_by,
			tier = excluded.tier,
			rule_id = excluded.rule_id,
			error = excluded.error,
			assigned_at = excluded.assigned_at
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, a := range assignments {
		var ruleID sql.NullInt64
		if a.RuleID != nil {
			ruleID = sql.NullInt64{Int64: *a.RuleID, Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			a.TransactionID, string(a.Category), string(a.MatchedBy),
			int(a.Tier), ruleID, nullString(a.Error), a.AssignedAt,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save assignment for %s: %w", a.TransactionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}
	return nil
}

// GetAssignment returns the assignment for one transaction.
func (s *SQLiteStore) GetAssignment(ctx context.Context, transactionID string) (*model.CategoryAssignment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(transactionID, "transactionID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT transaction_id, category, matched_by, tier, rule_id, error, assigned_at
		FROM category_assignments
		WHERE transaction_id = ?
	`, transactionID)

	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assignment for %q: %w", transactionID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

// AssignmentsByCategory returns all assignments with the given category.
func (s *SQLiteStore) AssignmentsByCategory(ctx context.Context, category model.Category) ([]model.CategoryAssignment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_id, category, matched_by, tier, rule_id, error, assigned_at
		FROM category_assignments
		WHERE category = ?
		ORDER BY assigned_at ASC
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.CategoryAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return result, nil
}

func scanAssignment(row scannable) (*model.CategoryAssignment, error) {
	var a model.CategoryAssignment
	var category, matchedBy string
	var tier int
	var ruleID sql.NullInt64
	var errText sql.NullString

	err := row.Scan(&a.TransactionID, &category, &matchedBy, &tier, &ruleID, &errText, &a.AssignedAt)
	if err != nil {
		return nil, err
	}

	a.Category = model.Category(category)
	a.MatchedBy = model.Provenance(matchedBy)
	a.Tier = model.Tier(tier)
	a.Error = errText.String
	if ruleID.Valid {
		a.RuleID = &ruleID.Int64
	}
	return &a, nil
}
