package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/spendsort/internal/common"
)

type countingAccounts struct {
	owners map[string]string
	errs   map[string]error
	calls  int
}

func (m *countingAccounts) AccountOwner(_ context.Context, accountID string) (string, error) {
	m.calls++
	if err, ok := m.errs[accountID]; ok {
		return "", err
	}
	if owner, ok := m.owners[accountID]; ok {
		return owner, nil
	}
	return "", common.ErrNotFound
}

func TestCachedAccountResolverMemoizes(t *testing.T) {
	inner := &countingAccounts{owners: map[string]string{"acc-1": "user-1"}}
	resolver := NewCachedAccountResolver(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		owner, err := resolver.AccountOwner(ctx, "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", owner)
	}
	assert.Equal(t, 1, inner.calls)

	// Unknown accounts are memoized too, so repeated misses stay cheap.
	for i := 0; i < 2; i++ {
		_, err := resolver.AccountOwner(ctx, "acc-missing")
		assert.ErrorIs(t, err, common.ErrNotFound)
	}
	assert.Equal(t, 2, inner.calls)
}

func TestCachedAccountResolverRetriesTransientErrors(t *testing.T) {
	inner := &countingAccounts{
		owners: map[string]string{"acc-1": "user-1"},
		errs:   map[string]error{"acc-1": errors.New("database is locked")},
	}
	resolver := NewCachedAccountResolver(inner)
	ctx := context.Background()

	_, err := resolver.AccountOwner(ctx, "acc-1")
	require.Error(t, err)

	// Once the store recovers the next lookup goes through and is cached.
	delete(inner.errs, "acc-1")

	owner, err := resolver.AccountOwner(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	owner, err = resolver.AccountOwner(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)
	assert.Equal(t, 2, inner.calls)
}
