package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/quillback/spendsort/internal/common"
)

// CachedAccountResolver memoizes owner lookups per account. A
// categorization run resolves the same handful of accounts once per
// transaction, so the cache collapses those into one store hit each.
// Safe for concurrent use.
type CachedAccountResolver struct {
	inner AccountResolver
	mu    sync.Mutex
	cache map[string]ownerResult
}

type ownerResult struct {
	userID string
	err    error
}

// NewCachedAccountResolver wraps an AccountResolver with a per-account
// memo. Successful lookups and not-found results are cached for the
// resolver's lifetime; transient errors are retried on the next call.
func NewCachedAccountResolver(inner AccountResolver) *CachedAccountResolver {
	return &CachedAccountResolver{
		inner: inner,
		cache: make(map[string]ownerResult),
	}
}

// AccountOwner implements AccountResolver.
func (c *CachedAccountResolver) AccountOwner(ctx context.Context, accountID string) (string, error) {
	c.mu.Lock()
	r, ok := c.cache[accountID]
	c.mu.Unlock()
	if ok {
		return r.userID, r.err
	}

	userID, err := c.inner.AccountOwner(ctx, accountID)
	if err == nil || errors.Is(err, common.ErrNotFound) {
		c.mu.Lock()
		c.cache[accountID] = ownerResult{userID: userID, err: err}
		c.mu.Unlock()
	}

	return userID, err
}
