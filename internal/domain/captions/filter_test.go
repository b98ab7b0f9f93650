package captions

import (
	"strings"
	"testing"

	"shortsmith/internal/types"
)

func TestBurnInFilter_EscapesQuotesAndColons(t *testing.T) {
	t.Parallel()

	style := types.CaptionStyle{FontSize: 42, FontColor: "white", BackgroundColor: "black@0.5", Position: "bottom"}
	got := BurnInFilter(`it's 10:30`, style)

	if !strings.Contains(got, `text='it\'s 10\:30'`) {
		t.Fatalf("expected escaped text, got %q", got)
	}
	if !strings.Contains(got, "fontsize=42") {
		t.Fatalf("expected fontsize in filter, got %q", got)
	}
	if !strings.Contains(got, "y=h-th-100") {
		t.Fatalf("expected bottom offset, got %q", got)
	}
}

func TestBurnInFilter_Position(t *testing.T) {
	t.Parallel()

	tests := []struct {
		position string
		wantY    string
	}{
		{"top", "y=100"},
		{"center", "y=(h-th)/2"},
		{"bottom", "y=h-th-100"},
		{"", "y=h-th-100"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run("pos_"+tt.position, func(t *testing.T) {
			t.Parallel()
			got := BurnInFilter("hello", types.CaptionStyle{Position: tt.position})
			if !strings.HasSuffix(got, tt.wantY) {
				t.Fatalf("position %q: expected suffix %q, got %q", tt.position, tt.wantY, got)
			}
		})
	}
}

func TestBurnInFilter_DefaultsApplied(t *testing.T) {
	t.Parallel()

	got := BurnInFilter("hello", types.CaptionStyle{})
	for _, want := range []string{"fontsize=48", "fontcolor=white", "boxcolor=black@0.5", "box=1", "x=(w-text_w)/2"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in filter, got %q", want, got)
		}
	}
}
