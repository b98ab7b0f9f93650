// Package ffmpeg adapts the external ffmpeg/ffprobe binaries to the pipeline's
// VideoTool port.
package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"shortsmith/internal/domain/captions"
	"shortsmith/internal/errs"
	"shortsmith/internal/ports"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return errs.Wrap(errs.ErrRender, "extract-audio", strings.TrimSpace(string(b)), err)
	}
	return nil
}

// RenderClip trims [start, end), scales and pads to the target portrait frame,
// encodes with a short-form delivery profile, and burns in the caption filter
// when opts carry both text and style.
func (a *Adapter) RenderClip(ctx context.Context, inPath, outPath string, opts ports.RenderOptions) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, renderArgs(inPath, outPath, opts)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return errs.Wrap(errs.ErrRender, "render-clip", strings.TrimSpace(string(b)), err)
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, inPath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, errs.Wrap(errs.ErrRender, "probe-duration", strings.TrimSpace(string(b)), err)
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func renderArgs(inPath, outPath string, opts ports.RenderOptions) []string {
	width := opts.Width
	height := opts.Height
	if width <= 0 {
		width = 1080
	}
	if height <= 0 {
		height = 1920
	}

	args := []string{
		"-y",
		"-ss", fmtSeconds(opts.StartSeconds),
		"-to", fmtSeconds(opts.EndSeconds),
		"-i", inPath,
	}

	filters := []string{
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", width, height),
		fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", width, height),
		"setsar=1",
	}
	if opts.CaptionText != "" && opts.CaptionStyle != nil {
		filters = append(filters, captions.BurnInFilter(opts.CaptionText, *opts.CaptionStyle))
	}

	args = append(args,
		"-vf", strings.Join(filters, ","),
		"-aspect", "9:16",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-maxrate", "5000k",
		"-bufsize", "10000k",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		outPath,
	)
	return args
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
