package captions

import (
	"reflect"
	"testing"

	"shortsmith/internal/types"
)

func word(text string, start, end float64) types.TranscriptWord {
	return types.TranscriptWord{Text: text, StartSeconds: start, EndSeconds: end}
}

func TestSegment_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := Segment(nil); len(got) != 0 {
		t.Fatalf("expected empty cue sequence, got %v", got)
	}
	if got := Segment([]types.TranscriptWord{}); len(got) != 0 {
		t.Fatalf("expected empty cue sequence, got %v", got)
	}
}

func TestSegment_PunctuationClosesEarly(t *testing.T) {
	t.Parallel()

	got := Segment([]types.TranscriptWord{word("Hello,", 0.5, 1.0)})
	want := []types.CaptionCue{{Text: "Hello,", StartSeconds: 0.5, EndSeconds: 1.0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSegment_WordBudget(t *testing.T) {
	t.Parallel()

	four := []types.TranscriptWord{
		word("one", 0, 0.2),
		word("two", 0.2, 0.4),
		word("three", 0.4, 0.6),
		word("four", 0.6, 0.8),
	}

	got := Segment(four)
	if len(got) != 1 {
		t.Fatalf("expected 1 cue for 4 words, got %d", len(got))
	}
	if got[0].Text != "one two three four" {
		t.Fatalf("unexpected cue text: %q", got[0].Text)
	}
	if got[0].StartSeconds != 0 || got[0].EndSeconds != 0.8 {
		t.Fatalf("unexpected cue timing: %+v", got[0])
	}

	five := append(four, word("five", 0.8, 1.0))
	got = Segment(five)
	if len(got) != 2 {
		t.Fatalf("expected 2 cues for 5 words, got %d", len(got))
	}
	if got[1].Text != "five" {
		t.Fatalf("expected trailing word flushed alone, got %q", got[1].Text)
	}
	if got[1].StartSeconds != 0.8 || got[1].EndSeconds != 1.0 {
		t.Fatalf("unexpected flush timing: %+v", got[1])
	}
}

func TestSegment_CuesOrderedAndNonOverlapping(t *testing.T) {
	t.Parallel()

	words := []types.TranscriptWord{
		word("So", 0, 0.3),
		word("today", 0.3, 0.7),
		word("we're", 0.7, 1.0),
		word("talking", 1.0, 1.5),
		word("about", 1.5, 1.9),
		word("Go,", 1.9, 2.2),
		word("the", 2.2, 2.4),
		word("language.", 2.4, 3.0),
	}

	got := Segment(words)
	if len(got) != 3 {
		t.Fatalf("expected 3 cues, got %d: %v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].EndSeconds > got[i].StartSeconds {
			t.Fatalf("cues overlap: %v then %v", got[i-1], got[i])
		}
	}
	if got[len(got)-1].EndSeconds != words[len(words)-1].EndSeconds {
		t.Fatalf("final cue end %v, want last word end %v",
			got[len(got)-1].EndSeconds, words[len(words)-1].EndSeconds)
	}
	if JoinText(got) != "So today we're talking about Go, the language." {
		t.Fatalf("unexpected joined text: %q", JoinText(got))
	}
}

func TestSegment_Idempotent(t *testing.T) {
	t.Parallel()

	words := []types.TranscriptWord{
		word("repeat", 0, 0.4),
		word("after", 0.4, 0.8),
		word("me!", 0.8, 1.2),
	}
	first := Segment(words)
	second := Segment(words)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("segmentation is not deterministic: %v vs %v", first, second)
	}
}
