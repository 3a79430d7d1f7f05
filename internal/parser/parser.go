// Package parser converts raw roster text into person records.
//
// The input format is three non-empty lines per person: name, then
// space-separated parents, then space-separated siblings. Blank lines
// are separators and may appear anywhere in any number.
package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/maayanb/kindrill/internal/model"
)

// ErrorKind distinguishes the two parse failure cases.
type ErrorKind int

const (
	// KindEmptyInput means no non-empty lines were found.
	KindEmptyInput ErrorKind = iota
	// KindIncompleteBlock means the non-empty line count is not a
	// multiple of three.
	KindIncompleteBlock
)

// ParseError reports why the input could not be parsed. For incomplete
// input, RemainderLines holds the trailing lines that do not form a
// full block.
type ParseError struct {
	Kind           ErrorKind
	Message        string
	RemainderLines []string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parse converts roster text into people in order of appearance.
// Each person gets a freshly generated unique id.
func Parse(text string) ([]model.Person, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, &ParseError{
			Kind:    KindEmptyInput,
			Message: "input is empty: no people found",
		}
	}
	if rem := len(lines) % 3; rem != 0 {
		fragment := "one incomplete line"
		if rem == 2 {
			fragment = "2 incomplete lines"
		}
		return nil, &ParseError{
			Kind: KindIncompleteBlock,
			Message: fmt.Sprintf(
				"input has %d non-empty lines, which leaves %s at the end; each person needs exactly 3 lines (name, parents, siblings)",
				len(lines), fragment),
			RemainderLines: lines[len(lines)-rem:],
		}
	}

	people := make([]model.Person, 0, len(lines)/3)
	for i := 0; i < len(lines); i += 3 {
		people = append(people, model.Person{
			ID:       uuid.NewString(),
			Name:     lines[i],
			Parents:  strings.Fields(lines[i+1]),
			Siblings: strings.Fields(lines[i+2]),
		})
	}
	return people, nil
}
