package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit-labs/session_api/playback"
)

func TestContentItemPlaybackItem(t *testing.T) {
	item := ContentItem{
		ID:          "c1",
		SessionID:   "s1",
		Title:       "Intro",
		Type:        playback.ContentAudio,
		Order:       3,
		AccessLevel: playback.AccessPremium,
		IsFree:      false,
		Required:    true,
		Duration:    12,
		Payload:     json.RawMessage(`{"k":"v"}`),
	}

	pb := item.PlaybackItem()
	assert.Equal(t, "c1", pb.ID)
	assert.Equal(t, "s1", pb.SessionID)
	assert.Equal(t, playback.ContentAudio, pb.Type)
	assert.Equal(t, 3, pb.Order)
	assert.Equal(t, playback.AccessPremium, pb.AccessLevel)
	assert.False(t, pb.Free)
	assert.True(t, pb.Required)
	assert.Equal(t, 12, pb.DurationMinutes)
	assert.JSONEq(t, `{"k":"v"}`, string(pb.Payload))
}

func TestContentItemParseChapters(t *testing.T) {
	item := ContentItem{
		Chapters: json.RawMessage(`[{"title":"Intro","start_time":0},{"title":"Main","start_time":90.5}]`),
	}

	chapters, err := item.ParseChapters()
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Main", chapters[1].Title)
	assert.Equal(t, 90.5, chapters[1].StartTime)
}

func TestContentItemParseChaptersEmpty(t *testing.T) {
	item := ContentItem{}

	chapters, err := item.ParseChapters()
	require.NoError(t, err)
	assert.Nil(t, chapters)
}

func TestContentItemParseChaptersInvalid(t *testing.T) {
	item := ContentItem{Chapters: json.RawMessage(`not json`)}

	_, err := item.ParseChapters()
	assert.Error(t, err)
}
