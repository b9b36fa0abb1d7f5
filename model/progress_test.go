package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressRecordCompletedIDsRoundTrip(t *testing.T) {
	var rec ProgressRecord
	rec.SetCompletedIDs([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, rec.CompletedIDs())
}

func TestProgressRecordCompletedIDsEmpty(t *testing.T) {
	var rec ProgressRecord
	assert.Nil(t, rec.CompletedIDs())
}

func TestProgressRecordCompletedIDsCorrupt(t *testing.T) {
	rec := ProgressRecord{CompletedContentIDs: json.RawMessage(`{{`)}
	assert.Nil(t, rec.CompletedIDs())
}
