package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursekit-labs/session_api/dto"
)

func TestSessionOptionsPassThrough(t *testing.T) {
	tracking := false
	opts := sessionOptions(dto.StartSessionRequest{
		AutoPlay:          true,
		TrackProgress:     &tracking,
		AllowNotes:        true,
		AllowBookmarks:    true,
		ShowPrerequisites: true,
		EnableComments:    true,
		RequiredOnly:      true,
	})

	assert.True(t, opts.AutoPlay)
	assert.False(t, opts.TrackProgress)
	assert.True(t, opts.AllowNotes)
	assert.True(t, opts.AllowBookmarks)
	assert.True(t, opts.ShowPrerequisites)
	assert.True(t, opts.EnableComments)
	assert.True(t, opts.RequiredOnly)
}

func TestSessionOptionsDefaults(t *testing.T) {
	opts := sessionOptions(dto.StartSessionRequest{})

	assert.True(t, opts.TrackProgress, "tracking defaults on when the request omits it")
	assert.False(t, opts.AutoPlay)
	assert.False(t, opts.RequiredOnly)
}
