// Package repository implements the domain persistence contracts on GORM.
// Every operation runs under a bounded deadline; driver failures are
// normalized to the application error kinds so callers can branch on them.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "mainta/internal/shared/errors"
)

const defaultQueryTimeout = 5 * time.Second

// withTimeout bounds a repository operation. The parent deadline wins when
// it is tighter.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// wrapDBError maps driver errors onto application error kinds. Timeouts
// and cancellations become transient errors so callers know a retry is
// safe.
func wrapDBError(err error, message string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NewNotFoundError(message)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.NewTransientError(message, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicateEntry(err):
		return apperrors.NewConflictError(message, err.Error())
	default:
		return apperrors.NewInternalError(message, err.Error())
	}
}

// isDuplicateEntry matches the MySQL unique-violation message for drivers
// that do not translate it to gorm.ErrDuplicatedKey.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
