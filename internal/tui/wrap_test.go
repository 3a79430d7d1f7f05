package tui

import (
	"strings"
	"testing"
)

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	lines := wrapText("who are the parents of Ziv", 10)
	for _, line := range lines {
		if len([]rune(line)) > 10 {
			t.Fatalf("line too wide: %q", line)
		}
	}
	joined := strings.Join(lines, " ")
	if joined != "who are the parents of Ziv" {
		t.Fatalf("words lost in wrapping: %q", joined)
	}
}

func TestWrapTextLongWord(t *testing.T) {
	lines := wrapText("abcdefghijklmnop", 5)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %v", lines)
	}
	if lines[0] != "abcde" || lines[3] != "p" {
		t.Fatalf("unexpected split: %v", lines)
	}
}

func TestWrapTextZeroWidth(t *testing.T) {
	lines := wrapText("hello world", 0)
	if len(lines) != 1 || lines[0] != "hello world" {
		t.Fatalf("zero width should return the text as-is: %v", lines)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	lines := wrapText("", 10)
	if len(lines) != 1 || lines[0] != "" {
		t.Fatalf("expected a single empty line, got %v", lines)
	}
}
