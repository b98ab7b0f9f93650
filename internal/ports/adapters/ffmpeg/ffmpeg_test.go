package ffmpeg

import (
	"strings"
	"testing"

	"shortsmith/internal/ports"
	"shortsmith/internal/types"
)

func TestRenderArgs_NoCaptionMeansNoDrawtext(t *testing.T) {
	t.Parallel()

	args := renderArgs("in.mp4", "out.mp4", ports.RenderOptions{
		StartSeconds: 10,
		EndSeconds:   40,
		Width:        1080,
		Height:       1920,
	})
	joined := strings.Join(args, " ")

	if strings.Contains(joined, "drawtext") {
		t.Fatalf("expected no overlay without caption inputs, got %q", joined)
	}
	if !strings.Contains(joined, "-ss 10.000") || !strings.Contains(joined, "-to 40.000") {
		t.Fatalf("expected trim range in args, got %q", joined)
	}
	if !strings.Contains(joined, "scale=1080:1920:force_original_aspect_ratio=decrease") {
		t.Fatalf("expected scale filter, got %q", joined)
	}
	if !strings.Contains(joined, "-movflags +faststart") {
		t.Fatalf("expected fast-start output, got %q", joined)
	}
}

func TestRenderArgs_CaptionRequiresBothInputs(t *testing.T) {
	t.Parallel()

	style := &types.CaptionStyle{FontSize: 40, Position: "bottom"}

	tests := []struct {
		name  string
		opts  ports.RenderOptions
		wants bool
	}{
		{"text and style", ports.RenderOptions{CaptionText: "it's here", CaptionStyle: style, EndSeconds: 1}, true},
		{"text only", ports.RenderOptions{CaptionText: "hello", EndSeconds: 1}, false},
		{"style only", ports.RenderOptions{CaptionStyle: style, EndSeconds: 1}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			joined := strings.Join(renderArgs("in.mp4", "out.mp4", tt.opts), " ")
			if got := strings.Contains(joined, "drawtext"); got != tt.wants {
				t.Fatalf("drawtext presence = %v, want %v (%q)", got, tt.wants, joined)
			}
		})
	}
}

func TestRenderArgs_CaptionTextEscaped(t *testing.T) {
	t.Parallel()

	args := renderArgs("in.mp4", "out.mp4", ports.RenderOptions{
		EndSeconds:   5,
		CaptionText:  "don't stop at 9:16",
		CaptionStyle: &types.CaptionStyle{},
	})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, `don\'t stop at 9\:16`) {
		t.Fatalf("expected escaped caption text, got %q", joined)
	}
}

func TestRenderArgs_DefaultResolution(t *testing.T) {
	t.Parallel()

	joined := strings.Join(renderArgs("in.mp4", "out.mp4", ports.RenderOptions{EndSeconds: 1}), " ")
	if !strings.Contains(joined, "pad=1080:1920") {
		t.Fatalf("expected 1080x1920 default, got %q", joined)
	}
}
