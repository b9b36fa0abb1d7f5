package dto

type MediaUploadResponse struct {
	ContentID string  `json:"content_id"`
	ObjectKey string  `json:"object_key"`
	FileName  string  `json:"file_name"`
	FileSize  int64   `json:"file_size"`
	Duration  float64 `json:"duration,omitempty"`
}
