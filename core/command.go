package core

import "context"

// Command is a reversible unit of external action. Undo must only be
// called after Execute succeeded, and at most once.
type Command interface {
	Execute(ctx context.Context) error
	Undo(ctx context.Context) error
}
