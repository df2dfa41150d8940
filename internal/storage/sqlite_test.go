package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/model"
	"github.com/quillback/spendsort/internal/storage"
	"github.com/quillback/spendsort/internal/testutil"
)

func sampleRule(owner model.RuleOwner, userID string) model.PatternRule {
	return model.PatternRule{
		Owner:            owner,
		UserID:           userID,
		Priority:         model.PriorityMerchantOnly,
		MerchantPattern:  "Netflix",
		MerchantContains: true,
		TargetCategory:   model.CategorySubscription,
		IsActive:         true,
	}
}

func TestPatternRuleRoundTrip(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	rule := sampleRule(model.OwnerUser, "user-1")
	min := decimal.RequireFromString("14.99")
	rule.Priority = model.PriorityMerchantAmount
	rule.AmountMin = &min
	rule.AmountMax = &min

	require.NoError(t, store.CreatePatternRule(ctx, &rule))
	require.NotZero(t, rule.ID)

	got, err := store.GetPatternRule(ctx, rule.ID)
	require.NoError(t, err)

	assert.Equal(t, rule.Owner, got.Owner)
	assert.Equal(t, rule.UserID, got.UserID)
	assert.Equal(t, rule.Priority, got.Priority)
	assert.Equal(t, rule.MerchantPattern, got.MerchantPattern)
	assert.True(t, got.MerchantContains)
	assert.Equal(t, rule.TargetCategory, got.TargetCategory)
	require.NotNil(t, got.AmountMin)
	require.NotNil(t, got.AmountMax)
	assert.True(t, got.AmountMin.Equal(min))
	assert.True(t, got.AmountMax.Equal(min))
	assert.True(t, got.IsActive)
	assert.Zero(t, got.MatchCount)
}

func TestGetPatternRuleNotFound(t *testing.T) {
	store := testutil.SetupTestStore(t)

	_, err := store.GetPatternRule(context.Background(), 9999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreatePatternRuleValidation(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	t.Run("user rule requires user ID", func(t *testing.T) {
		rule := sampleRule(model.OwnerUser, "")
		assert.ErrorContains(t, store.CreatePatternRule(ctx, &rule), "requires a user ID")
	})

	t.Run("system rule cannot carry a user ID", func(t *testing.T) {
		rule := sampleRule(model.OwnerSystem, "user-1")
		assert.ErrorContains(t, store.CreatePatternRule(ctx, &rule), "cannot have a user ID")
	})

	t.Run("malformed rule rejected", func(t *testing.T) {
		rule := sampleRule(model.OwnerSystem, "")
		rule.MerchantPattern = ""
		assert.Error(t, store.CreatePatternRule(ctx, &rule))
	})
}

func TestActiveRuleQueries(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	system := sampleRule(model.OwnerSystem, "")
	userA := sampleRule(model.OwnerUser, "user-a")
	userB := sampleRule(model.OwnerUser, "user-b")
	inactive := sampleRule(model.OwnerSystem, "")
	inactive.IsActive = false

	for _, r := range []*model.PatternRule{&system, &userA, &userB, &inactive} {
		require.NoError(t, store.CreatePatternRule(ctx, r))
	}

	systemRules, err := store.ActiveSystemRules(ctx)
	require.NoError(t, err)
	require.Len(t, systemRules, 1)
	assert.Equal(t, system.ID, systemRules[0].ID)

	userRules, err := store.ActiveUserRules(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, userRules, 1)
	assert.Equal(t, userA.ID, userRules[0].ID)

	all, err := store.ListPatternRules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestActiveSystemRulesOrdering(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	// Insert out of priority order; the query must return priority
	// ascending, id ascending.
	merchantOnly := sampleRule(model.OwnerSystem, "")

	withAmount := sampleRule(model.OwnerSystem, "")
	withAmount.Priority = model.PriorityMerchantAmount
	amount := decimal.RequireFromString("14.99")
	withAmount.AmountMin = &amount
	withAmount.AmountMax = &amount

	require.NoError(t, store.CreatePatternRule(ctx, &merchantOnly))
	require.NoError(t, store.CreatePatternRule(ctx, &withAmount))

	got, err := store.ActiveSystemRules(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, withAmount.ID, got[0].ID)
	assert.Equal(t, merchantOnly.ID, got[1].ID)
}

func TestDeactivatePatternRule(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	rule := sampleRule(model.OwnerSystem, "")
	require.NoError(t, store.CreatePatternRule(ctx, &rule))
	require.NoError(t, store.DeactivatePatternRule(ctx, rule.ID))

	// The rule survives deactivation; only the active queries hide it.
	got, err := store.GetPatternRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := store.ActiveSystemRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, store.DeactivatePatternRule(ctx, 9999), common.ErrNotFound)
}

func TestAddMatchCounts(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	rule := sampleRule(model.OwnerSystem, "")
	require.NoError(t, store.CreatePatternRule(ctx, &rule))

	require.NoError(t, store.AddMatchCounts(ctx, map[int64]int64{rule.ID: 3}))
	require.NoError(t, store.AddMatchCounts(ctx, map[int64]int64{rule.ID: 2}))

	got, err := store.GetPatternRule(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.MatchCount)

	// Empty batch is a no-op.
	assert.NoError(t, store.AddMatchCounts(ctx, nil))
}

func TestSeedSystemRulesIdempotent(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedSystemRules(ctx))
	first, err := store.ActiveSystemRules(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, store.SeedSystemRules(ctx))
	second, err := store.ActiveSystemRules(ctx)
	require.NoError(t, err)
	assert.Len(t, second, len(first))
}

func TestAccountOwnership(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	testutil.SeedAccount(t, store, "acc-1", "user-1")

	owner, err := store.AccountOwner(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	_, err = store.AccountOwner(ctx, "acc-ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Upsert reassigns ownership.
	require.NoError(t, store.UpsertAccount(ctx, storage.Account{ID: "acc-1", UserID: "user-2"}))
	owner, err = store.AccountOwner(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "user-2", owner)

	accounts, err := store.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc-1", accounts[0].ID)
}

func TestSaveTransactionsDeduplicates(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	txn := testutil.NewTransaction("txn-1", "acc-1")

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))

	got, err := store.TransactionsByAccount(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "txn-1", got[0].ID)
	assert.True(t, got[0].Amount.Equal(txn.Amount))
}

func TestTransactionsToCategorize(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	older := testutil.NewTransaction("txn-1", "acc-1")
	older.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testutil.NewTransaction("txn-2", "acc-1")
	newer.Date = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	done := testutil.NewTransaction("txn-3", "acc-1")
	done.Date = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{newer, older, done}))
	require.NoError(t, store.SaveAssignments(ctx, []model.CategoryAssignment{{
		TransactionID: "txn-3",
		Category:      model.CategoryGroceries,
		MatchedBy:     model.MatchedBySystem,
		AssignedAt:    time.Now().UTC(),
	}}))

	pending, err := store.TransactionsToCategorize(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Oldest first, already-assigned excluded.
	assert.Equal(t, "txn-1", pending[0].ID)
	assert.Equal(t, "txn-2", pending[1].ID)

	limited, err := store.TransactionsToCategorize(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "txn-1", limited[0].ID)
}

func TestSaveAssignmentsUpsert(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	txn := testutil.NewTransaction("txn-1", "acc-1")
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))

	first := model.CategoryAssignment{
		TransactionID: "txn-1",
		Category:      model.CategoryUncategorized,
		MatchedBy:     model.MatchedByUncategorized,
		Tier:          model.TierMerchantOnly,
		AssignedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.SaveAssignments(ctx, []model.CategoryAssignment{first}))

	ruleID := int64(7)
	second := model.CategoryAssignment{
		TransactionID: "txn-1",
		Category:      model.CategorySubscription,
		MatchedBy:     model.MatchedByUserRule,
		RuleID:        &ruleID,
		Tier:          model.TierMerchantOnly,
		AssignedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.SaveAssignments(ctx, []model.CategoryAssignment{second}))

	got, err := store.GetAssignment(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, model.CategorySubscription, got.Category)
	assert.Equal(t, model.MatchedByUserRule, got.MatchedBy)
	require.NotNil(t, got.RuleID)
	assert.Equal(t, int64(7), *got.RuleID)

	byCategory, err := store.AssignmentsByCategory(ctx, model.CategorySubscription)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "txn-1", byCategory[0].TransactionID)
}

func TestGetAssignmentNotFound(t *testing.T) {
	store := testutil.SetupTestStore(t)

	_, err := store.GetAssignment(context.Background(), "txn-ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := testutil.SetupTestStore(t)
	assert.NoError(t, store.Migrate(context.Background()))
}
