// Package usecase sequences one clip-production run: info fetch, download,
// transcription, caption segmentation, rendering, and optional metadata
// enrichment, with record bookkeeping around every outcome.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shortsmith/internal/domain/captions"
	"shortsmith/internal/errs"
	"shortsmith/internal/ports"
	"shortsmith/internal/types"
)

// Stage names are internal to orchestration; records only ever expose
// processing, completed, or failed.
const (
	stageFetchingInfo       = "fetching-info"
	stageDownloading        = "downloading"
	stageTranscribing       = "transcribing"
	stageSegmentingCaptions = "segmenting-captions"
	stageRendering          = "rendering"
	stageGeneratingMetadata = "generating-metadata"
)

// burnInMaxChars caps the text burned into the video so the overlay stays
// legible; the full caption text is still recorded and used for the SRT file.
const burnInMaxChars = 100

// ClipStore is the slice of the record store the orchestrator needs.
type ClipStore interface {
	CreateClip(ctx context.Context, rec types.ClipRecord) error
	UpdateClip(ctx context.Context, rec types.ClipRecord) error
}

type Deps struct {
	Fetcher  ports.SourceFetcher
	Video    ports.VideoTool
	ASR      ports.Transcriber
	Metadata ports.MetadataGenerator
	Records  ClipStore
	Log      zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Request types.ClipRequest

	// WorkDir is this run's private scratch directory; the downloaded source
	// and intermediate audio live here.
	WorkDir string
	// OutDir receives the rendered artifact and its subtitle file.
	OutDir string

	// GenerateMetadata toggles the enrichment stage entirely.
	GenerateMetadata bool
	// RequireMetadata promotes a metadata failure from degraded completion to
	// a pipeline failure.
	RequireMetadata bool
}

type Result struct {
	Clip         types.ClipRecord
	Cues         []types.CaptionCue
	SubtitlePath string
}

// Run executes the pipeline for one request. The returned record is always
// terminal: completed with artifact fields, or failed with the failing
// stage's error. The record store receives exactly one terminal update.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	if err := validateRequest(in.Request); err != nil {
		return Result{}, err
	}

	now := time.Now().UTC()
	rec := types.ClipRecord{
		ID:           uuid.NewString(),
		Status:       types.ClipStatusProcessing,
		SourceURL:    in.Request.SourceURL,
		StartSeconds: in.Request.StartSeconds,
		EndSeconds:   in.Request.EndSeconds,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.d.Records.CreateClip(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("create clip record: %w", err)
	}

	log := u.d.Log.With().Str("clip_id", rec.ID).Logger()

	// The downloaded source is released exactly once on any terminal path.
	// Removal failures are logged, never fatal.
	var downloadedPath string
	defer func() {
		if downloadedPath == "" {
			return
		}
		if err := os.Remove(downloadedPath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", downloadedPath).Msg("could not remove downloaded source")
		}
	}()

	// fetching-info
	if err := stageGate(ctx, stageFetchingInfo); err != nil {
		return u.fail(ctx, rec, err)
	}
	log.Info().Str("stage", stageFetchingInfo).Msg("stage started")
	info, err := u.d.Fetcher.Info(ctx, in.Request.SourceURL)
	if err != nil {
		return u.fail(ctx, rec, err)
	}
	rec.SourceTitle = info.Title
	rec.VideoDuration = info.DurationSeconds

	// downloading
	if err := stageGate(ctx, stageDownloading); err != nil {
		return u.fail(ctx, rec, err)
	}
	log.Info().Str("stage", stageDownloading).Msg("stage started")
	downloadedPath, err = u.d.Fetcher.Download(ctx, in.Request.SourceURL, in.WorkDir)
	if err != nil {
		return u.fail(ctx, rec, err)
	}

	// The requested range is validated against the real media, not the
	// reported info: source metadata can be missing or lie.
	sourceDur, err := u.d.Video.ProbeDuration(ctx, downloadedPath)
	if err != nil {
		return u.fail(ctx, rec, err)
	}
	if in.Request.EndSeconds > sourceDur.Seconds() {
		return u.fail(ctx, rec, errs.Wrap(errs.ErrPrecondition, stageDownloading,
			fmt.Sprintf("clip end %.1fs exceeds source duration %.1fs",
				in.Request.EndSeconds, sourceDur.Seconds()), nil))
	}

	// transcribing
	if err := stageGate(ctx, stageTranscribing); err != nil {
		return u.fail(ctx, rec, err)
	}
	log.Info().Str("stage", stageTranscribing).Msg("stage started")
	audioPath := filepath.Join(in.WorkDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, downloadedPath, audioPath); err != nil {
		return u.fail(ctx, rec, err)
	}
	words, err := u.d.ASR.Transcribe(ctx, audioPath, in.WorkDir)
	if err != nil {
		return u.fail(ctx, rec, err)
	}

	// segmenting-captions
	if err := stageGate(ctx, stageSegmentingCaptions); err != nil {
		return u.fail(ctx, rec, err)
	}
	log.Info().Str("stage", stageSegmentingCaptions).Int("words", len(words)).Msg("stage started")
	cues := captions.Segment(words)
	rec.CaptionText = captions.JoinText(cues)

	// rendering
	if err := stageGate(ctx, stageRendering); err != nil {
		return u.fail(ctx, rec, err)
	}
	log.Info().Str("stage", stageRendering).Int("cues", len(cues)).Msg("stage started")
	artifactPath := filepath.Join(in.OutDir, fmt.Sprintf("clip_%s.mp4", rec.ID))
	renderOpts := ports.RenderOptions{
		StartSeconds: in.Request.StartSeconds,
		EndSeconds:   in.Request.EndSeconds,
		Width:        in.Request.TargetWidth,
		Height:       in.Request.TargetHeight,
		CaptionStyle: in.Request.CaptionStyle,
	}
	if in.Request.CaptionStyle != nil {
		renderOpts.CaptionText = truncateRunes(rec.CaptionText, burnInMaxChars)
	}
	if err := u.d.Video.RenderClip(ctx, downloadedPath, artifactPath, renderOpts); err != nil {
		return u.fail(ctx, rec, err)
	}
	rec.ArtifactPath = artifactPath

	subtitlePath := ""
	if len(cues) > 0 {
		subtitlePath = filepath.Join(in.OutDir, fmt.Sprintf("clip_%s.srt", rec.ID))
		if err := os.WriteFile(subtitlePath, []byte(captions.FormatSRT(cues)), 0o644); err != nil {
			log.Warn().Err(err).Msg("could not write subtitle file")
			subtitlePath = ""
		}
	}

	// generating-metadata: optional enrichment. A failure here never rolls
	// back the successful render unless the caller mandated metadata.
	if in.GenerateMetadata {
		if err := stageGate(ctx, stageGeneratingMetadata); err != nil {
			return u.fail(ctx, rec, err)
		}
		log.Info().Str("stage", stageGeneratingMetadata).Msg("stage started")
		md, err := u.d.Metadata.Generate(ctx, info.Title, "", in.Request.EndSeconds-in.Request.StartSeconds)
		if err != nil {
			if in.RequireMetadata {
				return u.fail(ctx, rec, err)
			}
			log.Warn().Err(err).Str("classification", errs.Classify(err)).
				Msg("metadata generation failed, completing without AI fields")
		} else {
			rec.AIHook = md.Hook
			rec.AITitle = md.Title
			rec.AIDescription = md.Description
			rec.AITags = md.Tags
		}
	}

	rec.Status = types.ClipStatusCompleted
	if err := u.d.Records.UpdateClip(context.WithoutCancel(ctx), rec); err != nil {
		return Result{}, fmt.Errorf("record completion: %w", err)
	}
	log.Info().Str("artifact", rec.ArtifactPath).Msg("clip completed")

	return Result{Clip: rec, Cues: cues, SubtitlePath: subtitlePath}, nil
}

// fail records the terminal failure and surfaces the original error. Partial
// artifacts are never exposed: artifact fields stay unset on failure.
func (u Usecase) fail(ctx context.Context, rec types.ClipRecord, cause error) (Result, error) {
	rec.Status = types.ClipStatusFailed
	rec.ArtifactPath = ""
	rec.Error = fmt.Sprintf("[%s] %v", errs.Classify(cause), cause)

	// Terminal bookkeeping must survive the cancellation that may have caused
	// the failure.
	if err := u.d.Records.UpdateClip(context.WithoutCancel(ctx), rec); err != nil {
		u.d.Log.Error().Err(err).Str("clip_id", rec.ID).Msg("could not record failure")
	}
	return Result{Clip: rec}, cause
}

// stageGate enforces cooperative cancellation: a cancelled context prevents
// the next stage from starting while leaving cleanup to the deferred path.
func stageGate(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cancelled before %s: %w", stage, err)
	}
	return nil
}

func validateRequest(req types.ClipRequest) error {
	if req.SourceURL == "" {
		return fmt.Errorf("source url is required")
	}
	if req.StartSeconds < 0 {
		return fmt.Errorf("start must be >= 0")
	}
	if req.EndSeconds <= req.StartSeconds {
		return fmt.Errorf("end must be > start")
	}
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
