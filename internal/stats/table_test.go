package stats

import "testing"

func TestFormatTableAlignment(t *testing.T) {
	headers := []string{"Name", "Accuracy"}
	rows := [][]string{
		{"Ziv", "100.0%"},
		{"Dana Lev", "7.5%"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "Ziv        100.0%" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "Dana Lev     7.5%" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	headers := []string{"Name", "Accuracy"}
	rows := [][]string{
		{"王伟", "100.0%"},
		{"Dana Lev", "7.5%"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// 王伟 occupies four cells, so both names pad to the same width.
	if lines[1] != "王伟       100.0%" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "Dana Lev     7.5%" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty table, got %v", lines)
	}
}
