package contract

import (
	"context"

	"lit-mashup-be/internal/entity"
	"lit-mashup-be/pkg/store"
)

type MashupRepository interface {
	Create(ctx context.Context, result *store.GenerationResult) error
	FindAll(ctx context.Context) ([]*entity.MashupRecord, error)
	FindBySessionId(ctx context.Context, sessionId string) ([]*entity.MashupRecord, error)
}
