package store

import (
	"context"

	"securelocal/internal/domain"
)

// OnChange accepts a handler for changes to keys of section. No
// subscription is recorded and handler is never called.
func (l *Local) OnChange(ctx context.Context, section string, keys any, handler domain.ChangeHandler) error {
	return nil
}
