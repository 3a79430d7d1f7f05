package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines of at most width display cells,
// preferring to break at spaces. Words wider than the line are split.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, word := range strings.Fields(text) {
		wordWidth := runewidth.StringWidth(word)
		sep := 0
		if currentWidth > 0 {
			sep = 1
		}
		if currentWidth+sep+wordWidth <= width {
			if sep == 1 {
				current.WriteByte(' ')
				currentWidth++
			}
			current.WriteString(word)
			currentWidth += wordWidth
			continue
		}
		if currentWidth > 0 {
			flush()
		}
		// Split words wider than a whole line.
		for runewidth.StringWidth(word) > width {
			runes := []rune(word)
			cut := 0
			cutWidth := 0
			for i, r := range runes {
				rw := runewidth.RuneWidth(r)
				if cutWidth+rw > width {
					break
				}
				cutWidth += rw
				cut = i + 1
			}
			lines = append(lines, string(runes[:cut]))
			word = string(runes[cut:])
		}
		current.WriteString(word)
		currentWidth = runewidth.StringWidth(word)
	}
	if currentWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
