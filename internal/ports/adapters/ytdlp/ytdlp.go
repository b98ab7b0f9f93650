// Package ytdlp adapts the yt-dlp binary to the SourceFetcher port.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"shortsmith/internal/errs"
	"shortsmith/internal/types"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

type infoJSON struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
	Channel   string  `json:"channel"`
	Thumbnail string  `json:"thumbnail"`
}

// Info resolves source metadata without downloading the media.
func (a *Adapter) Info(ctx context.Context, sourceURL string) (types.SourceVideoInfo, error) {
	cmd := exec.CommandContext(ctx, a.bin, "-J", "--no-playlist", sourceURL)
	b, err := cmd.Output()
	if err != nil {
		return types.SourceVideoInfo{}, errs.Wrap(errs.ErrSourceUnavailable, "fetching-info", toolDiagnostic(err), err)
	}

	var info infoJSON
	if err := json.Unmarshal(b, &info); err != nil {
		return types.SourceVideoInfo{}, errs.Wrap(errs.ErrSourceUnavailable, "fetching-info", "unparseable metadata", err)
	}

	author := info.Uploader
	if author == "" {
		author = info.Channel
	}
	return types.SourceVideoInfo{
		Title:           info.Title,
		DurationSeconds: int64(info.Duration),
		Author:          author,
		ThumbnailURL:    info.Thumbnail,
	}, nil
}

// Download materializes the source video under destDir and returns the local
// path. Each pipeline run uses its own destDir, so the fixed file name cannot
// collide across runs. Releasing the file is the caller's responsibility.
func (a *Adapter) Download(ctx context.Context, sourceURL, destDir string) (string, error) {
	outPath := filepath.Join(destDir, "source.mp4")
	cmd := exec.CommandContext(ctx, a.bin,
		"--no-playlist",
		"-f", "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b",
		"--merge-output-format", "mp4",
		"-o", outPath,
		sourceURL,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", errs.Wrap(errs.ErrSourceUnavailable, "downloading", tail(string(b), 400), err)
	}
	if st, err := os.Stat(outPath); err != nil || st.Size() == 0 {
		return "", errs.Wrap(errs.ErrSourceUnavailable, "downloading", "download produced no file", err)
	}
	return outPath, nil
}

func toolDiagnostic(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return tail(string(exitErr.Stderr), 400)
	}
	return err.Error()
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("...%s", s[len(s)-n:])
}
