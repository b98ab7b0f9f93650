// Package pipeline wires configuration into adapters and runs the clip
// production and publish flows end to end. It owns workspace layout; the
// usecase and publisher only see directories handed to them.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"shortsmith/internal/config"
	"shortsmith/internal/credentials"
	"shortsmith/internal/ports"
	"shortsmith/internal/ports/adapters/ffmpeg"
	"shortsmith/internal/ports/adapters/gemini"
	"shortsmith/internal/ports/adapters/whispercpp"
	"shortsmith/internal/ports/adapters/youtube"
	"shortsmith/internal/ports/adapters/ytdlp"
	"shortsmith/internal/publish"
	"shortsmith/internal/records"
	"shortsmith/internal/types"
	"shortsmith/internal/usecase"
)

// Compile-time adapter checks.
var (
	_ ports.VideoTool         = (*ffmpeg.Adapter)(nil)
	_ ports.SourceFetcher     = (*ytdlp.Adapter)(nil)
	_ ports.Transcriber       = (*whispercpp.Adapter)(nil)
	_ ports.MetadataGenerator = (*gemini.Adapter)(nil)
	_ ports.VideoHost         = (*youtube.Adapter)(nil)
)

// ProcessRequest is the CLI-facing description of one clip run.
type ProcessRequest struct {
	SourceURL    string
	StartSeconds float64
	EndSeconds   float64
	SkipMetadata bool
}

// Process runs the full clip pipeline for one request and returns the
// terminal clip record.
func Process(ctx context.Context, cfg config.Config, log zerolog.Logger, req ProcessRequest) (types.ClipRecord, error) {
	if err := cfg.Validate(); err != nil {
		return types.ClipRecord{}, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := records.Open(cfg.Paths.RecordsDB)
	if err != nil {
		return types.ClipRecord{}, fmt.Errorf("open record store: %w", err)
	}
	defer func() { _ = store.Close() }()

	workDir := filepath.Join(cfg.Paths.WorkDir, "runs", runID(req.SourceURL))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return types.ClipRecord{}, fmt.Errorf("prepare workspace: %w", err)
	}
	if err := os.MkdirAll(cfg.Paths.OutDir, 0o755); err != nil {
		return types.ClipRecord{}, fmt.Errorf("prepare output directory: %w", err)
	}

	uc := usecase.New(usecase.Deps{
		Fetcher:  ytdlp.New(cfg.Tools.YtDlp),
		Video:    ffmpeg.New(cfg.Tools.FFmpeg, cfg.Tools.FFprobe),
		ASR:      whispercpp.New(cfg.Tools.WhisperBin, cfg.Tools.WhisperModel),
		Metadata: gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL),
		Records:  store,
		Log:      log,
	})

	res, err := uc.Run(ctx, usecase.Input{
		Request: types.ClipRequest{
			SourceURL:    req.SourceURL,
			StartSeconds: req.StartSeconds,
			EndSeconds:   req.EndSeconds,
			TargetWidth:  cfg.Render.Width,
			TargetHeight: cfg.Render.Height,
			CaptionStyle: cfg.CaptionStyle(),
		},
		WorkDir:          workDir,
		OutDir:           cfg.Paths.OutDir,
		GenerateMetadata: !req.SkipMetadata && cfg.Gemini.APIKey != "",
		RequireMetadata:  cfg.Gemini.Required,
	})
	if err != nil {
		return res.Clip, err
	}
	return res.Clip, nil
}

// PublishRequest identifies a completed clip and the credential to publish
// it with.
type PublishRequest struct {
	ClipID  string
	UserID  string
	Title   string
	Privacy string
}

// Publish uploads a previously produced clip to the video host.
func Publish(ctx context.Context, cfg config.Config, log zerolog.Logger, req PublishRequest) (types.UploadRecord, error) {
	if err := cfg.ValidatePublish(); err != nil {
		return types.UploadRecord{}, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := records.Open(cfg.Paths.RecordsDB)
	if err != nil {
		return types.UploadRecord{}, fmt.Errorf("open record store: %w", err)
	}
	defer func() { _ = store.Close() }()

	clip, err := store.GetClip(ctx, req.ClipID)
	if err != nil {
		return types.UploadRecord{}, fmt.Errorf("load clip %s: %w", req.ClipID, err)
	}

	token, err := loadToken(cfg, req.UserID)
	if err != nil {
		return types.UploadRecord{}, err
	}

	p := publish.New(publish.Deps{
		Host:    youtube.New(cfg.YouTube.ClientID, cfg.YouTube.ClientSecret),
		Records: store,
		Log:     log,
	})

	privacy := req.Privacy
	if privacy == "" {
		privacy = cfg.YouTube.Privacy
	}
	return p.Publish(ctx, clip, token, publish.Options{
		Title:         req.Title,
		CategoryID:    cfg.YouTube.CategoryID,
		PrivacyStatus: privacy,
	})
}

// MetadataVariations generates count metadata candidates for a source title
// without producing a clip. Only the generative provider is wired up.
func MetadataVariations(ctx context.Context, cfg config.Config, log zerolog.Logger, sourceTitle string, count int) ([]types.AIMetadata, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required to generate metadata")
	}
	if err := gemini.ValidateBaseURL(cfg.Gemini.BaseURL, cfg.Gemini.AllowedHosts); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info().Str("source_title", sourceTitle).Int("count", count).Msg("generating metadata variations")
	gen := gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
	return gen.GenerateVariations(ctx, sourceTitle, count)
}

// SaveToken stores a user's OAuth token bundle for later publishes.
func SaveToken(cfg config.Config, userID string, tok *oauth2.Token) error {
	return credentials.NewStore(cfg.Paths.CredentialsDir).Save(userID, tok)
}

func loadToken(cfg config.Config, userID string) (*oauth2.Token, error) {
	if userID == "" {
		userID = "default"
	}
	return credentials.NewStore(cfg.Paths.CredentialsDir).Load(userID)
}

// runID keeps per-source scratch directories stable across retries so a rerun
// of the same URL reuses the same workspace.
func runID(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:8])
}
