package reconcile

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/logger"

	"go.uber.org/zap"
)

// Locker serializes reloads of the same account. Lock blocks until the key is
// free or ctx is done and returns the function that releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Result summarizes one reload.
type Result struct {
	AccountID       string        `json:"account_id"`
	AccountName     string        `json:"account_name"`
	Kind            Kind          `json:"kind"`
	FetchedChannels int           `json:"fetched_channels"`
	CriticalFailure bool          `json:"critical_failure"`
	Skipped         bool          `json:"skipped"`
	Duration        time.Duration `json:"duration"`
	Err             error         `json:"-"`
	Error           string        `json:"error,omitempty"`
}

// Engine runs reloads through the selector under a per-account lock.
type Engine struct {
	selector *Selector
	locker   Locker
	tracker  *OutcomeTracker
	logger   *zap.Logger
}

// NewEngine creates an engine. A nil locker disables locking.
func NewEngine(selector *Selector, locker Locker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		selector: selector,
		locker:   locker,
		tracker:  NewOutcomeTracker(),
		logger:   logger,
	}
}

// Tracker exposes the outcome tracker fed by every reload.
func (e *Engine) Tracker() *OutcomeTracker {
	return e.tracker
}

// Reload refreshes the catalog of one account. Progress lines go to progress,
// the logger and the outcome tracker. The returned Result always describes the
// run; its Err is also returned.
func (e *Engine) Reload(ctx context.Context, account *Account, progress Progress) (*Result, error) {
	start := time.Now()
	result := &Result{AccountID: account.ID, AccountName: account.Name, Kind: account.Kind}

	e.tracker.Forget(account.ID)
	sink := progress.Tee(e.tracker.Sink(account.ID)).Tee(e.logSink(account))

	finish := func(err error) (*Result, error) {
		if err != nil {
			sink.Logf("Reload failed: %v", err)
			result.Err = err
			result.Error = err.Error()
		}
		result.Duration = time.Since(start)
		result.FetchedChannels = e.tracker.FetchedChannels(account.ID)
		result.CriticalFailure = e.tracker.HasCriticalFailure(account.ID)
		return result, err
	}

	if account.PauseCaching {
		sink.Logf("Caching paused for: %s", account.Name)
		result.Skipped = true
		return finish(nil)
	}

	strategy, err := e.selector.Select(account.Kind)
	if err != nil {
		return finish(err)
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, account.ID)
		if err != nil {
			return finish(fmt.Errorf("failed to lock account %s: %w", account.ID, err))
		}
		defer unlock()
	}

	return finish(strategy.Reload(ctx, account, sink))
}

func (e *Engine) logSink(account *Account) Progress {
	return logger.Progress(logger.WithAccount(e.logger, account.ID, account.Name).
		With(zap.String("kind", string(account.Kind))))
}
