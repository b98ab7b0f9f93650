// Package publish takes a completed clip artifact and uploads it to the video
// host, tracking each attempt as an upload record. The clip record itself is
// read-only here; publishing never mutates pipeline state.
package publish

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"shortsmith/internal/credentials"
	"shortsmith/internal/errs"
	"shortsmith/internal/ports"
	"shortsmith/internal/types"
)

const (
	defaultTitle       = "Short clip"
	defaultDescription = "Check out this clip! #Shorts"
)

// UploadStore is the slice of the record store the publisher needs.
type UploadStore interface {
	CreateUpload(ctx context.Context, rec types.UploadRecord) error
	UpdateUpload(ctx context.Context, rec types.UploadRecord) error
}

type Deps struct {
	Host    ports.VideoHost
	Records UploadStore
	Log     zerolog.Logger
}

type Publisher struct{ d Deps }

func New(d Deps) Publisher { return Publisher{d: d} }

// Options override the metadata derived from the clip record. Empty fields
// fall back to the clip's AI fields, then to its source fields, then to
// defaults.
type Options struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
}

// Publish uploads the clip's artifact. Preconditions are checked before any
// network traffic: a missing or empty artifact and an unusable credential both
// fail without contacting the host. Returns the terminal upload record.
func (p Publisher) Publish(ctx context.Context, clip types.ClipRecord, token *oauth2.Token, opts Options) (types.UploadRecord, error) {
	if err := checkArtifact(clip); err != nil {
		return types.UploadRecord{}, err
	}
	if !credentials.Usable(token) {
		// Carries the authorization marker as the cause; both match errors.Is.
		return types.UploadRecord{}, errs.Wrap(errs.ErrPrecondition, "publishing",
			"credential is missing or expired with no refresh token", errs.ErrAuthorization)
	}

	rec := types.UploadRecord{
		ID:        uuid.NewString(),
		ClipID:    clip.ID,
		Status:    types.UploadStatusUploading,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.d.Records.CreateUpload(ctx, rec); err != nil {
		return types.UploadRecord{}, fmt.Errorf("create upload record: %w", err)
	}

	log := p.d.Log.With().Str("upload_id", rec.ID).Str("clip_id", clip.ID).Logger()
	md := metadataFor(clip, opts)
	log.Info().Str("title", md.Title).Msg("upload started")

	result, err := p.d.Host.Upload(ctx, clip.ArtifactPath, md, token)
	if err != nil {
		rec.Status = types.UploadStatusFailed
		rec.Error = fmt.Sprintf("[%s] %v", errs.Classify(err), err)
		if uerr := p.d.Records.UpdateUpload(context.WithoutCancel(ctx), rec); uerr != nil {
			log.Error().Err(uerr).Msg("could not record upload failure")
		}
		return rec, err
	}

	rec.Status = types.UploadStatusPublished
	rec.RemoteVideoID = result.VideoID
	rec.RemoteURL = result.URL
	rec.PublishedAt = time.Now().UTC()
	if err := p.d.Records.UpdateUpload(context.WithoutCancel(ctx), rec); err != nil {
		return rec, fmt.Errorf("record published upload: %w", err)
	}
	log.Info().Str("url", rec.RemoteURL).Msg("upload published")

	return rec, nil
}

// checkArtifact verifies the clip actually has something to upload.
func checkArtifact(clip types.ClipRecord) error {
	if clip.Status != types.ClipStatusCompleted {
		return errs.Wrap(errs.ErrPrecondition, "publishing",
			fmt.Sprintf("clip %s is %s, not completed", clip.ID, clip.Status), nil)
	}
	if clip.ArtifactPath == "" {
		return errs.Wrap(errs.ErrPrecondition, "publishing", "clip has no artifact path", nil)
	}
	info, err := os.Stat(clip.ArtifactPath)
	if err != nil {
		return errs.Wrap(errs.ErrPrecondition, "publishing",
			fmt.Sprintf("artifact %s is not readable", clip.ArtifactPath), err)
	}
	if info.Size() == 0 {
		return errs.Wrap(errs.ErrPrecondition, "publishing",
			fmt.Sprintf("artifact %s is empty", clip.ArtifactPath), nil)
	}
	return nil
}

// metadataFor resolves upload metadata with per-field fallbacks so a clip
// without AI enrichment still publishes with sensible values.
func metadataFor(clip types.ClipRecord, opts Options) types.UploadMetadata {
	title := firstNonEmpty(opts.Title, clip.AITitle, clip.SourceTitle, defaultTitle)
	description := firstNonEmpty(opts.Description, clip.AIDescription, defaultDescription)
	if !strings.Contains(description, "#Shorts") {
		description += "\n\n#Shorts"
	}

	tags := opts.Tags
	if len(tags) == 0 {
		tags = clip.AITags
	}
	if len(tags) == 0 {
		tags = []string{"Shorts"}
	}

	return types.UploadMetadata{
		Title:         title,
		Description:   description,
		Tags:          tags,
		CategoryID:    opts.CategoryID,
		PrivacyStatus: opts.PrivacyStatus,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
