package playback

import "encoding/json"

// ContentType tags the kind of content a session item carries. The set is
// closed; anything else resolves to the registry fallback.
type ContentType string

const (
	ContentVideo       ContentType = "VIDEO"
	ContentDocument    ContentType = "DOCUMENT"
	ContentLiveSession ContentType = "LIVE_SESSION"
	ContentQuiz        ContentType = "QUIZ"
	ContentAssignment  ContentType = "ASSIGNMENT"
	ContentAudio       ContentType = "AUDIO"
	ContentDiscussion  ContentType = "DISCUSSION"
	ContentSurvey      ContentType = "SURVEY"
	ContentExercise    ContentType = "EXERCISE"
)

// Valid reports whether t is a member of the closed content type set.
func (t ContentType) Valid() bool {
	switch t {
	case ContentVideo, ContentDocument, ContentLiveSession, ContentQuiz,
		ContentAssignment, ContentAudio, ContentDiscussion, ContentSurvey,
		ContentExercise:
		return true
	}
	return false
}

// TimeBased reports whether content of this type is driven by a playback
// clock rather than an explicit completion action.
func (t ContentType) TimeBased() bool {
	return t == ContentVideo || t == ContentAudio
}

type AccessLevel string

const (
	AccessFree    AccessLevel = "FREE"
	AccessPremium AccessLevel = "PREMIUM"
)

// Item is one unit of session content as seen by the engine. The payload is
// opaque here; renderer strategies interpret it.
type Item struct {
	ID              string
	SessionID       string
	Type            ContentType
	Order           int
	AccessLevel     AccessLevel
	Free            bool
	Required        bool
	DurationMinutes int
	Payload         json.RawMessage
}

// Chapter marks a named offset inside time-based content.
type Chapter struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"start_time"` // seconds
}
