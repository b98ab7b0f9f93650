package captions

import (
	"testing"

	"shortsmith/internal/types"
)

func TestFormatSRT_SingleCue(t *testing.T) {
	t.Parallel()

	got := FormatSRT([]types.CaptionCue{
		{Text: "Hi", StartSeconds: 1.234, EndSeconds: 2.5},
	})
	want := "1\n00:00:01,234 --> 00:00:02,500\nHi\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatSRT_MultipleCuesBlankLineSeparated(t *testing.T) {
	t.Parallel()

	got := FormatSRT([]types.CaptionCue{
		{Text: "first", StartSeconds: 0, EndSeconds: 1},
		{Text: "second", StartSeconds: 1, EndSeconds: 2.75},
	})
	want := "1\n00:00:00,000 --> 00:00:01,000\nfirst\n" +
		"\n" +
		"2\n00:00:01,000 --> 00:00:02,750\nsecond\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSRTTimestamp_HourRollover(t *testing.T) {
	t.Parallel()

	if got := srtTimestamp(3723.042); got != "01:02:03,042" {
		t.Fatalf("got %q, want 01:02:03,042", got)
	}
	if got := srtTimestamp(-1); got != "00:00:00,000" {
		t.Fatalf("negative input should clamp to zero, got %q", got)
	}
}
