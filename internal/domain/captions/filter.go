package captions

import (
	"fmt"
	"strings"

	"shortsmith/internal/types"
)

const defaultFontFile = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

// BurnInFilter builds an ffmpeg drawtext filter placing text horizontally
// centered at a vertical offset chosen by style.Position. All interpolated
// fields are escaped; a malformed value must not corrupt the filter graph.
func BurnInFilter(text string, style types.CaptionStyle) string {
	y := "h-th-100"
	switch style.Position {
	case "top":
		y = "100"
	case "center":
		y = "(h-th)/2"
	}

	fontSize := style.FontSize
	if fontSize <= 0 {
		fontSize = 48
	}
	fontColor := style.FontColor
	if fontColor == "" {
		fontColor = "white"
	}
	boxColor := style.BackgroundColor
	if boxColor == "" {
		boxColor = "black@0.5"
	}

	parts := []string{
		"drawtext=text='" + escapeFilterText(text) + "'",
		"fontfile=" + defaultFontFile,
	}
	if style.FontFamily != "" {
		parts = append(parts, "font='"+escapeFilterText(style.FontFamily)+"'")
	}
	parts = append(parts,
		fmt.Sprintf("fontsize=%d", fontSize),
		"fontcolor="+escapeFilterText(fontColor),
		"box=1",
		"boxcolor="+escapeFilterText(boxColor),
		"boxborderw=10",
		"x=(w-text_w)/2",
		"y="+y,
	)
	return strings.Join(parts, ":")
}

// escapeFilterText escapes single quotes and colons so interpolated values
// survive ffmpeg filter-graph parsing.
func escapeFilterText(s string) string {
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	return s
}
