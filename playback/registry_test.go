package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolvesFallbackForUnknownType(t *testing.T) {
	r := NewDefaultRegistry()

	s := r.Resolve(ContentType("HOLOGRAM"))
	require.NotNil(t, s, "resolve never returns nil")
	assert.IsType(t, UnsupportedStrategy{}, s)
	assert.False(t, r.Supported("HOLOGRAM"))

	// The unsupported item still mounts; the session stays navigable past it.
	h, err := s.Mount(Item{ID: "x"}, &captureEmitter{})
	require.NoError(t, err)
	h.Unmount()
}

func TestRegistryDefaultWiring(t *testing.T) {
	r := NewDefaultRegistry()

	assert.IsType(t, TimedStrategy{}, r.Resolve(ContentAudio))
	assert.IsType(t, TimedStrategy{}, r.Resolve(ContentVideo))
	assert.IsType(t, ManualStrategy{}, r.Resolve(ContentDocument))
	assert.IsType(t, ManualStrategy{}, r.Resolve(ContentQuiz))
	assert.IsType(t, ManualStrategy{}, r.Resolve(ContentSurvey))
}

func TestRegistryTimedStrategyMountsController(t *testing.T) {
	r := NewDefaultRegistry()
	em := &captureEmitter{}

	h, err := r.Resolve(ContentAudio).Mount(Item{ID: "a1", Type: ContentAudio}, em)
	require.NoError(t, err)

	c, ok := h.(*Controller)
	require.True(t, ok, "timed strategies mount a playback controller")
	assert.Equal(t, StatusIdle, c.Status())
}

func TestRegistryCustomFallback(t *testing.T) {
	r := NewRegistry()
	r.SetFallback(ManualStrategy{ContentType: "ANY"})

	assert.IsType(t, ManualStrategy{}, r.Resolve(ContentVideo))
}
