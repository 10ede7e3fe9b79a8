package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/docbrief/docbrief/internal/pkg/dbutil"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
	"github.com/docbrief/docbrief/internal/pkg/retry"
)

const (
	storageMaxAttempts = 3
	storageBaseDelay   = 500 * time.Millisecond
)

// withRetry runs op under the shared storage retry policy. Only connectivity
// failures are retried; once the budget is spent they surface as
// ErrStorageUnavailable. SQL-level failures pass through untouched.
func withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	policy := retry.Policy{
		MaxAttempts: storageMaxAttempts,
		BaseDelay:   storageBaseDelay,
		Retryable:   dbutil.IsTransient,
	}
	err := policy.Do(ctx, op)
	if err == nil {
		return nil
	}
	if dbutil.IsTransient(err) {
		return fmt.Errorf("%w: %v", appErr.ErrStorageUnavailable, err)
	}
	return err
}
