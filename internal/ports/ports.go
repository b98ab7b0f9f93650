// Package ports declares the boundaries between the pipeline and its external
// collaborators. Adapters implement these; the orchestrator and publisher only
// see the interfaces, so tests substitute fakes.
package ports

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"shortsmith/internal/types"
)

// RenderOptions describe one clip render. Caption burn-in applies only when
// both text and style are present; leaving either empty is not an error.
type RenderOptions struct {
	StartSeconds float64
	EndSeconds   float64
	Width        int
	Height       int
	CaptionText  string
	CaptionStyle *types.CaptionStyle
}

// VideoTool drives the external transcoding tool.
type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error
	ProbeDuration(ctx context.Context, inPath string) (time.Duration, error)
	RenderClip(ctx context.Context, inPath, outPath string, opts RenderOptions) error
}

// SourceFetcher resolves a source-video reference and materializes a local
// copy. The caller owns releasing the downloaded file.
type SourceFetcher interface {
	Info(ctx context.Context, sourceURL string) (types.SourceVideoInfo, error)
	Download(ctx context.Context, sourceURL, destDir string) (string, error)
}

// Transcriber produces an ordered word-level transcript for a local media file.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath, cacheDir string) ([]types.TranscriptWord, error)
}

// MetadataGenerator calls the generative-text provider for clip metadata.
type MetadataGenerator interface {
	Generate(ctx context.Context, sourceTitle, sourceDescription string, clipDurationSeconds float64) (types.AIMetadata, error)
	GenerateVariations(ctx context.Context, sourceTitle string, count int) ([]types.AIMetadata, error)
}

// UploadResult identifies a published video on the hosting platform.
type UploadResult struct {
	VideoID string
	URL     string
}

// VideoHost uploads a finished artifact. The credential is an explicit
// argument so concurrent publishes never share mutable client state.
type VideoHost interface {
	Upload(ctx context.Context, artifactPath string, md types.UploadMetadata, token *oauth2.Token) (UploadResult, error)
}
