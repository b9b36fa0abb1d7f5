package dto

// Playback command DTOs

type SeekRequest struct {
	Position float64 `json:"position" validate:"min=0"`
}

func (r SeekRequest) Validate() error {
	return GetValidator().Struct(r)
}

type VolumeRequest struct {
	Volume float64 `json:"volume" validate:"min=0,max=1"`
}

func (r VolumeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SpeedRequest struct {
	Rate float64 `json:"rate" validate:"oneof=0.5 0.75 1 1.25 1.5 1.75 2"`
}

func (r SpeedRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChapterSkipRequest struct {
	Direction int `json:"direction" validate:"oneof=-1 1"`
}

func (r ChapterSkipRequest) Validate() error {
	return GetValidator().Struct(r)
}

// HeartbeatRequest reports wall-clock seconds elapsed since the client's
// previous heartbeat while the player was running.
type HeartbeatRequest struct {
	Elapsed float64 `json:"elapsed" validate:"gt=0,max=60"`
}

func (r HeartbeatRequest) Validate() error {
	return GetValidator().Struct(r)
}

type PlaybackStateResponse struct {
	ContentID    string  `json:"content_id"`
	Status       string  `json:"status"`
	CurrentTime  float64 `json:"current_time"`
	Duration     float64 `json:"duration"`
	Percent      int     `json:"percent"`
	Volume       float64 `json:"volume"`
	Muted        bool    `json:"muted"`
	Rate         float64 `json:"rate"`
	Looping      bool    `json:"looping"`
	ChapterIndex int     `json:"chapter_index"`
	ChapterTitle string  `json:"chapter_title,omitempty"`
	ListenTime   float64 `json:"listen_time"`
	SourceURL    string  `json:"source_url,omitempty"`
	Error        string  `json:"error,omitempty"`
}
