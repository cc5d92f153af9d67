package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lit-mashup-be/pkg/store"
)

func TestSessionMapperRoundTrip(t *testing.T) {
	m := NewSessionMapper()
	now := time.Now().Truncate(time.Second)

	session := &store.Session{
		ID:    "6d2c9f7e-7a4b-4a6e-9a3f-0c1d2e3f4a5b",
		Phase: store.PhaseCulturalResearch,
		Context: store.GatheredContext{
			Genres:             []string{"jazz", "blues"},
			SkillLevel:         store.SkillBeginner,
			LearningObjectives: []string{"teaching", "rhythm"},
			CulturalFocus:      []string{"heritage"},
			TargetAudience:     "higher_education",
			WebResearch: []store.ResearchSnippet{
				{Title: "Jazz", URL: "https://music.university.edu/jazz", Excerpt: "notes", Tier: store.TierHigh, Recency: "undated"},
			},
		},
		Messages: []store.Message{
			{Role: store.RoleUser, Content: "hi", CreatedAt: now},
			{Role: store.RoleModel, Content: "hello", CreatedAt: now},
		},
		ToolCalls: []store.ToolCall{
			{Tool: "web_search", Query: "jazz music education", ResultCount: 1, Success: true, CalledAt: now},
		},
		Ready:     false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	model, err := m.ToModel(session)
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, session.ID, model.Id)
	assert.Equal(t, session.Phase, model.Phase)

	back, err := m.ToSession(model)
	require.NoError(t, err)
	require.NotNil(t, back)

	assert.Equal(t, session.Context.Genres, back.Context.Genres)
	assert.Equal(t, session.Context.SkillLevel, back.Context.SkillLevel)
	assert.Len(t, back.Messages, 2)
	assert.Len(t, back.ToolCalls, 1)
	assert.Equal(t, session.ToolCalls[0].Query, back.ToolCalls[0].Query)
}

func TestSessionMapperNil(t *testing.T) {
	m := NewSessionMapper()

	model, err := m.ToModel(nil)
	require.NoError(t, err)
	assert.Nil(t, model)

	session, err := m.ToSession(nil)
	require.NoError(t, err)
	assert.Nil(t, session)
}
