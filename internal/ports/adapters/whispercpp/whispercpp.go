// Package whispercpp adapts the whisper.cpp binary to the Transcriber port.
package whispercpp

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"shortsmith/internal/errs"
	"shortsmith/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// transcriptJSON mirrors the word-granularity output of whisper.cpp -oj.
type transcriptJSON struct {
	Segments []struct {
		Words []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Word  string  `json:"word"`
		} `json:"words"`
	} `json:"segments"`
}

// Transcribe runs whisper.cpp against a local media file and flattens the
// per-segment words into one ordered word sequence.
func (a *Adapter) Transcribe(ctx context.Context, mediaPath, cacheDir string) ([]types.TranscriptWord, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", mediaPath,
		"-oj",
		"-of", outPrefix,
		"-owts",
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, errs.Wrap(errs.ErrProviderTransport, "transcribing",
			strings.TrimSpace(string(b)), err)
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, errs.Wrap(errs.ErrProviderTransport, "transcribing", "transcript output missing", err)
	}

	var tr transcriptJSON
	if err := json.Unmarshal(jb, &tr); err != nil {
		return nil, errs.Wrap(errs.ErrProviderTransport, "transcribing", "unparseable transcript", err)
	}
	return flatten(tr), nil
}

func flatten(tr transcriptJSON) []types.TranscriptWord {
	var out []types.TranscriptWord
	for _, seg := range tr.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			out = append(out, types.TranscriptWord{
				Text:         text,
				StartSeconds: w.Start,
				EndSeconds:   w.End,
			})
		}
	}
	return out
}
