// Package engine implements the categorization engine: a deterministic,
// rule-based pipeline that assigns every transaction exactly one category
// with an explicit provenance.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/model"
	"github.com/quillback/spendsort/internal/rules"
	"github.com/quillback/spendsort/internal/taxonomy"
	"github.com/quillback/spendsort/internal/tier"
)

// Assigner is the categorization front door. It is stateless with respect to
// its own logic: each call depends only on the transaction, the rule
// snapshot, and the taxonomy table. The only shared mutable state is the
// per-rule match counter, which is atomic and flushed once per batch.
type Assigner struct {
	ruleSource  RuleSource
	accounts    AccountResolver
	sink        AssignmentSink
	table       *taxonomy.Table
	systemRules []model.PatternRule
	system      *ruleStrategy
	counters    matchCounters
	maxWorkers  int
}

// Config holds configuration options for the assigner.
type Config struct {
	MaxWorkers int
}

// DefaultConfig returns the default configuration: one worker per core.
func DefaultConfig() Config {
	return Config{MaxWorkers: runtime.NumCPU()}
}

// New creates an assigner, loading the active system rule set through the
// rule source. A rule load failure is fatal: the engine must not run with
// a partially loaded rule set.
func New(ctx context.Context, ruleSource RuleSource, accounts AccountResolver, sink AssignmentSink, table *taxonomy.Table) (*Assigner, error) {
	return NewWithConfig(ctx, ruleSource, accounts, sink, table, DefaultConfig())
}

// NewWithConfig creates an assigner with custom configuration.
func NewWithConfig(ctx context.Context, ruleSource RuleSource, accounts AccountResolver, sink AssignmentSink, table *taxonomy.Table, config Config) (*Assigner, error) {
	systemRules, err := ruleSource.ActiveSystemRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRuleLoad, err)
	}

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = runtime.NumCPU()
	}

	slog.Info("Categorization engine ready",
		"system_rules", len(systemRules),
		"taxonomy_version", table.Version(),
		"taxonomy_keys", table.Len())

	return &Assigner{
		ruleSource:  ruleSource,
		accounts:    accounts,
		sink:        sink,
		table:       table,
		systemRules: systemRules,
		system:      newRuleStrategy("system-rules", systemRules),
		maxWorkers:  config.MaxWorkers,
	}, nil
}

// Assign categorizes a single transaction against the given user rules.
// On an account resolution failure the returned assignment records the
// failure and the error is also returned; every other outcome, matching
// nothing included, resolves to an explicit terminal assignment and a nil
// error.
func (a *Assigner) Assign(ctx context.Context, txn model.Transaction, userRules []model.PatternRule) (model.CategoryAssignment, error) {
	if _, err := a.accounts.AccountOwner(ctx, txn.AccountID); err != nil {
		resErr := common.NewAccountResolutionError(txn.AccountID, err)
		assignment := model.Uncategorized(txn.ID, tier.Classify(txn))
		assignment.Error = resErr.Error()
		return assignment, resErr
	}

	t := tier.Classify(txn)

	// User rules run before anything else, tier 0 included: user intent
	// is authoritative even for transactions with no provider signals.
	userStrategy := newRuleStrategy("user-rules", userRules)
	if winner, ok := userStrategy.Evaluate(ctx, txn, t); ok {
		return a.finish(txn, winner), nil
	}

	// No usable signal and no user rule: explicit terminal state.
	if t == model.TierNone {
		return model.Uncategorized(txn.ID, t), nil
	}

	strategies := []Strategy{
		a.system,
		&taxonomyStrategy{table: a.table},
	}

	var candidates []Candidate
	for _, s := range strategies {
		if c, ok := s.Evaluate(ctx, txn, t); ok {
			candidates = append(candidates, c)
		}
	}

	winner, ok := pickWinner(candidates)
	if !ok {
		return model.Uncategorized(txn.ID, t), nil
	}
	return a.finish(txn, winner), nil
}

// AssignAll categorizes a batch concurrently. One transaction's failure
// never aborts the batch: the returned slice always has one assignment
// per input, position-aligned, with failures recorded individually.
// Assignments are handed to the sink once, after the whole batch.
func (a *Assigner) AssignAll(ctx context.Context, txns []model.Transaction, userRules []model.PatternRule) ([]model.CategoryAssignment, error) {
	results := make([]model.CategoryAssignment, len(txns))

	sem := make(chan struct{}, a.maxWorkers)
	var wg sync.WaitGroup

	for i, txn := range txns {
		wg.Add(1)
		go func(idx int, transaction model.Transaction) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				assignment := model.Uncategorized(transaction.ID, tier.Classify(transaction))
				assignment.Error = ctx.Err().Error()
				results[idx] = assignment
				return
			}

			assignment, err := a.Assign(ctx, transaction, userRules)
			if err != nil {
				common.LogError(err, "Transaction skipped", common.Fields{
					"transaction_id": transaction.ID,
					"account_id":     transaction.AccountID,
				})
			}
			results[idx] = assignment
		}(i, txn)
	}

	wg.Wait()

	a.flushCounters(ctx)

	if a.sink != nil {
		if err := a.sink.SaveAssignments(ctx, results); err != nil {
			return results, fmt.Errorf("failed to save assignments: %w", err)
		}
	}

	return results, nil
}

// finish stamps the winning candidate into an assignment and records the
// rule match for telemetry.
func (a *Assigner) finish(txn model.Transaction, winner Candidate) model.CategoryAssignment {
	if winner.RuleID != nil {
		a.counters.increment(*winner.RuleID)
	}

	return model.CategoryAssignment{
		TransactionID: txn.ID,
		Category:      winner.Category,
		MatchedBy:     winner.MatchedBy,
		Tier:          winner.Tier,
		RuleID:        winner.RuleID,
		AssignedAt:    time.Now().UTC(),
	}
}

// flushCounters persists accumulated match counts. Best effort: a persist
// failure is logged and never fails the run.
func (a *Assigner) flushCounters(ctx context.Context) {
	counts := a.counters.snapshot()
	if len(counts) == 0 {
		return
	}

	if err := a.ruleSource.AddMatchCounts(ctx, counts); err != nil {
		common.LogError(fmt.Errorf("%w: %v", common.ErrCounterPersist, err),
			"Failed to persist rule match counts", common.Fields{
				"rules": len(counts),
			})
	}
}

// SystemRuleCount reports how many active system rules are loaded.
func (a *Assigner) SystemRuleCount() int {
	return len(a.systemRules)
}

// ValidateRules checks every loaded system rule is well-formed. Used by
// the CLI's startup checks.
func (a *Assigner) ValidateRules() error {
	for _, r := range a.systemRules {
		if err := rules.Validate(r); err != nil {
			return fmt.Errorf("system rule %d: %w", r.ID, err)
		}
	}
	return nil
}
