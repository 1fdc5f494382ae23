package sqlite

import (
	"fmt"
	"strings"

	"github.com/openrits/openrits/pkg/types"
)

// constraintErr maps SQLite constraint failures (CHECK, UNIQUE, NOT NULL,
// FOREIGN KEY) to types.ErrConstraint so callers can match with errors.Is.
// The driver detail is kept in the message. Other errors pass through
// unchanged.
func constraintErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return fmt.Errorf("%w: %v", types.ErrConstraint, err)
	}
	return err
}
