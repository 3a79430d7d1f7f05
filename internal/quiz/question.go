// Package quiz generates questions for the seven drill modes and
// checks user answers against them.
package quiz

import (
	"fmt"
	"strings"

	"github.com/maayanb/kindrill/internal/model"
)

// Mode identifies a drill mode.
type Mode int

const (
	ModeFlashcard Mode = iota
	ModeTrueFalse
	ModeMultipleChoice
	ModeMatching
	ModeFillBlank
	ModeFreeRecall
	ModeSpeedRound
)

// Modes lists every drill mode in presentation order.
var Modes = []Mode{
	ModeFlashcard,
	ModeTrueFalse,
	ModeMultipleChoice,
	ModeMatching,
	ModeFillBlank,
	ModeFreeRecall,
	ModeSpeedRound,
}

func (m Mode) String() string {
	switch m {
	case ModeFlashcard:
		return "flashcard"
	case ModeTrueFalse:
		return "truefalse"
	case ModeMultipleChoice:
		return "choice"
	case ModeMatching:
		return "matching"
	case ModeFillBlank:
		return "fillblank"
	case ModeFreeRecall:
		return "recall"
	case ModeSpeedRound:
		return "speed"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode resolves a mode name from the CLI or config file.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == strings.ToLower(strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (valid: %s)", s, strings.Join(ModeNames(), ", "))
}

// ModeNames returns the valid mode names.
func ModeNames() []string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = m.String()
	}
	return names
}

// Relation selects which family list a question is about.
type Relation int

const (
	RelationParents Relation = iota
	RelationSiblings
)

func (r Relation) String() string {
	if r == RelationSiblings {
		return "siblings"
	}
	return "parents"
}

// Side selects which face of a flashcard is shown first.
type Side int

const (
	SideName Side = iota
	SideFamily
)

// Question is one generated drill question. It is a closed set of
// variants, one per mode; consumers dispatch with a type switch.
// Questions are immutable and single-use.
type Question interface {
	QuestionMode() Mode
	isQuestion()
}

// Flashcard shows one side of a card; the user flips it and grades
// themselves.
type Flashcard struct {
	Person   model.Person
	ShowSide Side
}

// TrueFalse presents a statement about a person's family.
type TrueFalse struct {
	Person    model.Person
	Statement string
	IsTrue    bool
}

// MultipleChoice presents a prompt with one correct option among
// distractors.
type MultipleChoice struct {
	Person       model.Person
	Prompt       string
	Options      []string
	CorrectIndex int
}

// MatchPair is one name→answer pair in a matching question.
type MatchPair struct {
	PersonID string
	Name     string
	Answer   string
}

// Matching asks the user to pair several people with their parents or
// siblings.
type Matching struct {
	Relation Relation
	Pairs    []MatchPair
}

// FillBlank hides one family member (or the person's name) and shows
// the rest as a clue.
type FillBlank struct {
	Person  model.Person
	Prompt  string
	Visible []string
	Missing string
}

// FreeRecall asks for the person's full family from memory.
type FreeRecall struct {
	Person model.Person
}

// SpeedRound wraps a true/false or multiple-choice question with a
// fixed time budget.
type SpeedRound struct {
	Inner    Question
	BudgetMs int64
}

func (Flashcard) QuestionMode() Mode      { return ModeFlashcard }
func (TrueFalse) QuestionMode() Mode      { return ModeTrueFalse }
func (MultipleChoice) QuestionMode() Mode { return ModeMultipleChoice }
func (Matching) QuestionMode() Mode       { return ModeMatching }
func (FillBlank) QuestionMode() Mode      { return ModeFillBlank }
func (FreeRecall) QuestionMode() Mode     { return ModeFreeRecall }
func (SpeedRound) QuestionMode() Mode     { return ModeSpeedRound }

func (Flashcard) isQuestion()      {}
func (TrueFalse) isQuestion()      {}
func (MultipleChoice) isQuestion() {}
func (Matching) isQuestion()       {}
func (FillBlank) isQuestion()      {}
func (FreeRecall) isQuestion()     {}
func (SpeedRound) isQuestion()     {}
