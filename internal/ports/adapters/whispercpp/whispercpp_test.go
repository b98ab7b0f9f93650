package whispercpp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"shortsmith/internal/errs"
)

func TestFlatten_SkipsEmptyWordsAndTrims(t *testing.T) {
	t.Parallel()

	var tr transcriptJSON
	payload := `{"segments":[
		{"words":[{"start":0.1,"end":0.5,"word":" Hello"},{"start":0.5,"end":0.6,"word":"  "}]},
		{"words":[{"start":0.7,"end":1.2,"word":"world. "}]}
	]}`
	if err := json.Unmarshal([]byte(payload), &tr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	words := flatten(tr)
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d: %v", len(words), words)
	}
	if words[0].Text != "Hello" || words[1].Text != "world." {
		t.Fatalf("unexpected words: %v", words)
	}
	if words[1].StartSeconds != 0.7 || words[1].EndSeconds != 1.2 {
		t.Fatalf("unexpected timing: %+v", words[1])
	}
}

func TestFlatten_EmptyTranscript(t *testing.T) {
	t.Parallel()

	if got := flatten(transcriptJSON{}); len(got) != 0 {
		t.Fatalf("expected no words, got %v", got)
	}
}

func TestTranscribe_ToolFailureClassified(t *testing.T) {
	t.Parallel()

	a := New("/nonexistent/whisper-cli", "/nonexistent/model.bin")
	_, err := a.Transcribe(context.Background(), "in.wav", t.TempDir())
	if !errors.Is(err, errs.ErrProviderTransport) {
		t.Fatalf("expected provider transport error, got %v", err)
	}
}
