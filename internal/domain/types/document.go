package types

import "context"

// Document is the decoded content of one section: JSON object keys mapped to
// JSON values (map[string]any, []any, string, float64, bool or nil).
type Document map[string]any

// ChangeHandler receives new values for watched keys.
type ChangeHandler func(ctx context.Context, values Document)
