package implementation

import (
	"context"

	"gorm.io/gorm"

	"lit-mashup-be/internal/entity"
	"lit-mashup-be/internal/mapper"
	"lit-mashup-be/internal/model"
	"lit-mashup-be/internal/repository/contract"
	"lit-mashup-be/pkg/store"
)

type MashupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MashupMapper
}

func NewMashupRepository(db *gorm.DB) contract.MashupRepository {
	return &MashupRepositoryImpl{
		db:     db,
		mapper: mapper.NewMashupMapper(),
	}
}

func (r *MashupRepositoryImpl) Create(ctx context.Context, result *store.GenerationResult) error {
	m, err := r.mapper.ResultToModel(result)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MashupRepositoryImpl) FindAll(ctx context.Context) ([]*entity.MashupRecord, error) {
	var models []model.MashupRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models)
}

func (r *MashupRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) ([]*entity.MashupRecord, error) {
	var models []model.MashupRecord
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models)
}

func (r *MashupRepositoryImpl) toEntities(models []model.MashupRecord) ([]*entity.MashupRecord, error) {
	out := make([]*entity.MashupRecord, 0, len(models))
	for i := range models {
		e, err := r.mapper.ToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
