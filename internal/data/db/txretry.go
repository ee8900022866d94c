package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jyotishya/jyotishya-backend/internal/pkg/httpx"
)

const txMaxAttempts = 3

// IsRetryableTxError reports whether a transaction failed in a way a clean
// re-run can fix: Postgres serialization failures (40001) and deadlocks
// (40P01), and sqlite busy/locked errors under its single-writer model.
func IsRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "40001") || strings.Contains(msg, "40P01") {
		return true
	}
	if strings.Contains(msg, "deadlock detected") {
		return true
	}
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "database is locked") ||
		strings.Contains(lower, "database table is locked") ||
		strings.Contains(lower, "sqlite_busy")
}

// Retry runs fn up to txMaxAttempts times, backing off with jitter between
// attempts while the failure stays retryable.
func Retry(ctx context.Context, fn func() error) error {
	backoff := 50 * time.Millisecond

	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn()
		if err == nil || !IsRetryableTxError(err) {
			return err
		}
		if attempt == txMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(httpx.JitterSleep(backoff)):
		}
		backoff *= 2
	}
	return err
}

// RunInTxRetry runs fn inside a SERIALIZABLE transaction, retrying the whole
// transaction on serialization conflicts. Postgres's default READ COMMITTED
// would let two racing check-then-insert transactions both commit, so the
// invariant-enforcing write paths (booking conflicts, chart quota) go through
// here. fn must be safe to run more than once.
func (s *Service) RunInTxRetry(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return Retry(ctx, func() error {
		return s.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
	})
}

// IsNotFound unwraps gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
