package captions

import (
	"fmt"
	"math"
	"strings"

	"shortsmith/internal/types"
)

// FormatSRT renders cues as sequentially numbered SRT blocks with
// millisecond-precision timestamps.
func FormatSRT(cues []types.CaptionCue) string {
	blocks := make([]string, 0, len(cues))
	for i, c := range cues {
		blocks = append(blocks, fmt.Sprintf(
			"%d\n%s --> %s\n%s\n",
			i+1,
			srtTimestamp(c.StartSeconds),
			srtTimestamp(c.EndSeconds),
			c.Text,
		))
	}
	return strings.Join(blocks, "\n")
}

func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMS := int64(math.Round(seconds * 1000))
	hours := totalMS / 3_600_000
	minutes := (totalMS % 3_600_000) / 60_000
	secs := (totalMS % 60_000) / 1000
	ms := totalMS % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}
