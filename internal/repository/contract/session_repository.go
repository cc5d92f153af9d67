package contract

import (
	"context"
	"errors"

	"lit-mashup-be/pkg/store"
)

// ErrSessionNotFound is returned by Get for unknown session ids
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores conversation state addressed by session id.
// Implementations must make Save atomic per id.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*store.Session, error)
	Create(ctx context.Context, session *store.Session) error
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, id string) error
}
