package dto

// StorageEvent is the "object finalized" notification emitted by the storage
// gateway whenever an upload completes. One event drives at most one
// transcode job.
type StorageEvent struct {
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}
