package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"lit-mashup-be/internal/entity"
	"lit-mashup-be/internal/model"
	"lit-mashup-be/pkg/store"
)

type MashupMapper struct{}

func NewMashupMapper() *MashupMapper {
	return &MashupMapper{}
}

func (m *MashupMapper) ResultToModel(r *store.GenerationResult) (*model.MashupRecord, error) {
	if r == nil {
		return nil, nil
	}

	edu, err := json.Marshal(r.Educational)
	if err != nil {
		return nil, err
	}
	meta, err := json.Marshal(r.Metadata)
	if err != nil {
		return nil, err
	}

	return &model.MashupRecord{
		SessionId:    r.SessionID,
		Title:        r.Title,
		Lyrics:       r.Lyrics,
		Educational:  datatypes.JSON(edu),
		QualityScore: r.QualityScore,
		FallbackUsed: r.FallbackUsed,
		Metadata:     datatypes.JSON(meta),
		CreatedAt:    r.GeneratedAt,
	}, nil
}

func (m *MashupMapper) ToEntity(rec *model.MashupRecord) (*entity.MashupRecord, error) {
	if rec == nil {
		return nil, nil
	}

	out := &entity.MashupRecord{
		Id:           rec.Id,
		SessionId:    rec.SessionId,
		Title:        rec.Title,
		Lyrics:       rec.Lyrics,
		QualityScore: rec.QualityScore,
		FallbackUsed: rec.FallbackUsed,
		CreatedAt:    rec.CreatedAt,
	}

	if len(rec.Educational) > 0 {
		if err := json.Unmarshal(rec.Educational, &out.Educational); err != nil {
			return nil, err
		}
	}
	if len(rec.Metadata) > 0 {
		if err := json.Unmarshal(rec.Metadata, &out.Metadata); err != nil {
			return nil, err
		}
	}

	return out, nil
}
