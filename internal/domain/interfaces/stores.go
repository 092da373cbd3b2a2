package interfaces

import (
	"context"

	domaintypes "securelocal/internal/domain/types"
)

// LocalStore is a per-section key-value document store.
//
// keys arguments accept nil (every key), a string, a []string, or a []any of
// strings. Any other shape is ignored.
type LocalStore interface {
	Section() domaintypes.Section
	Get(ctx context.Context, keys any) (domaintypes.Document, error)
	Set(ctx context.Context, items map[string]any) error
	Remove(ctx context.Context, keys any) error
	Clear(ctx context.Context) error
	OnChange(ctx context.Context, section string, keys any, handler domaintypes.ChangeHandler) error
}
