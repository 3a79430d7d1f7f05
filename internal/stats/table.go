package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable renders the per-person accuracy table as plain text.
// Every row has one cell per header; columns are sized to their widest
// cell by display width, so names with wide runes stay aligned.
func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	if len(headers) == 0 {
		return nil
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, rightAlignCols))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	padding := width - runewidth.StringWidth(value)
	if padding <= 0 {
		return value
	}
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}
