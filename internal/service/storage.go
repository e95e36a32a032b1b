package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	apperrors "gatherly/internal/errors"
)

// storageErr wraps a repository error. Pool and connectivity failures are
// translated to ErrUnavailable so they surface as 503 instead of a generic
// internal error.
func storageErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
