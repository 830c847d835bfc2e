package rank

import "context"

// Completer produces a chat completion for a given purpose label.
type Completer interface {
	Complete(ctx context.Context, purpose, system, user string) (string, error)
}
