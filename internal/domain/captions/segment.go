// Package captions converts word-level transcripts into display-ready caption
// cues and renders them as SRT text or an ffmpeg drawtext filter for burn-in.
package captions

import (
	"strings"

	"shortsmith/internal/types"
)

// maxWordsPerCue closes a cue once this many words have accumulated, keeping
// cues readable on vertical-video layouts.
const maxWordsPerCue = 4

// Segment groups transcript words into caption cues. A cue closes when the
// buffer reaches maxWordsPerCue or the latest word ends in sentence/clause
// punctuation; leftover words flush as a final cue. Single greedy pass, order
// preserving, no re-splitting. Empty input yields an empty sequence.
func Segment(words []types.TranscriptWord) []types.CaptionCue {
	if len(words) == 0 {
		return nil
	}

	var cues []types.CaptionCue
	var buf []string
	start := 0.0

	for _, w := range words {
		if len(buf) == 0 {
			start = w.StartSeconds
		}
		buf = append(buf, w.Text)

		if len(buf) >= maxWordsPerCue || endsWithPunctuation(w.Text) {
			cues = append(cues, types.CaptionCue{
				Text:         joinWords(buf),
				StartSeconds: start,
				EndSeconds:   w.EndSeconds,
			})
			buf = buf[:0]
		}
	}

	if len(buf) > 0 {
		last := words[len(words)-1]
		cues = append(cues, types.CaptionCue{
			Text:         joinWords(buf),
			StartSeconds: start,
			EndSeconds:   last.EndSeconds,
		})
	}

	return cues
}

// JoinText returns the full caption text of a cue sequence, space separated.
func JoinText(cues []types.CaptionCue) string {
	parts := make([]string, 0, len(cues))
	for _, c := range cues {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, " ")
}

func joinWords(words []string) string {
	trimmed := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(w); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return strings.Join(trimmed, " ")
}

func endsWithPunctuation(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case '.', '!', '?', ',', ';', ':':
		return true
	default:
		return false
	}
}
