package types

import "time"

// SourceVideoInfo is an immutable snapshot of the source video, fetched once
// per pipeline run.
type SourceVideoInfo struct {
	Title           string `json:"title"`
	DurationSeconds int64  `json:"duration_seconds"`
	Author          string `json:"author"`
	ThumbnailURL    string `json:"thumbnail_url"`
}

// TranscriptWord is one word with word-level timestamps as produced by the
// transcript provider. Sequences are ordered by non-decreasing start time.
type TranscriptWord struct {
	Text         string  `json:"text"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// CaptionCue is a single caption display unit derived from a contiguous run of
// transcript words. Cues in a sequence never overlap and preserve word order.
type CaptionCue struct {
	Text         string  `json:"text"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// CaptionStyle configures the burned-in caption appearance. Passed through the
// pipeline by value and never mutated.
type CaptionStyle struct {
	FontFamily      string `json:"font_family" yaml:"font_family"`
	FontSize        int    `json:"font_size" yaml:"font_size"`
	FontColor       string `json:"font_color" yaml:"font_color"`
	BackgroundColor string `json:"background_color" yaml:"background_color"`
	Position        string `json:"position" yaml:"position"`   // top | center | bottom
	Animation       string `json:"animation" yaml:"animation"` // fade | slide | none | ""
}

// ClipRequest is the caller-supplied description of one clip to produce.
type ClipRequest struct {
	SourceURL    string
	StartSeconds float64
	EndSeconds   float64
	TargetWidth  int
	TargetHeight int
	CaptionStyle *CaptionStyle
}

// Clip record statuses. These are the only externally visible states; the
// finer-grained stage names stay inside the orchestrator.
const (
	ClipStatusProcessing = "processing"
	ClipStatusCompleted  = "completed"
	ClipStatusFailed     = "failed"
)

// ClipRecord tracks one pipeline run. Created in processing state, then
// receives exactly one terminal update (completed or failed).
type ClipRecord struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	SourceURL     string    `json:"source_url"`
	SourceTitle   string    `json:"source_title"`
	VideoDuration int64     `json:"video_duration_seconds"`
	StartSeconds  float64   `json:"start_seconds"`
	EndSeconds    float64   `json:"end_seconds"`
	CaptionText   string    `json:"caption_text"`
	ArtifactPath  string    `json:"artifact_path"`
	AIHook        string    `json:"ai_hook"`
	AITitle       string    `json:"ai_title"`
	AIDescription string    `json:"ai_description"`
	AITags        []string  `json:"ai_tags"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Upload record statuses.
const (
	UploadStatusUploading = "uploading"
	UploadStatusPublished = "published"
	UploadStatusFailed    = "failed"
)

// UploadRecord tracks one publish attempt. References a ClipRecord by id only.
type UploadRecord struct {
	ID            string    `json:"id"`
	ClipID        string    `json:"clip_id"`
	Status        string    `json:"status"`
	RemoteVideoID string    `json:"remote_video_id"`
	RemoteURL     string    `json:"remote_url"`
	Error         string    `json:"error,omitempty"`
	PublishedAt   time.Time `json:"published_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// AIMetadata is the enrichment produced by the generative provider.
type AIMetadata struct {
	Hook        string   `json:"hook"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UploadMetadata is what the publisher sends to the hosting platform.
type UploadMetadata struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
}
