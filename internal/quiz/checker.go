package quiz

import (
	"fmt"
	"strings"

	"github.com/maayanb/kindrill/internal/match"
	"github.com/maayanb/kindrill/internal/model"
)

// DefaultNoSiblingsAnswers are the free-recall answers accepted for a
// person with no siblings. The set is configuration data; callers may
// pass their own.
var DefaultNoSiblingsAnswers = []string{"", "none", "no siblings", "אין"}

// CheckFlashcard records a self-graded flashcard flip.
func CheckFlashcard(q Flashcard, knew bool) model.AnswerResult {
	correct := familySummary(q.Person)
	userAnswer := "knew it"
	if q.ShowSide == SideFamily {
		correct = q.Person.Name
	}
	if !knew {
		userAnswer = "didn't know"
	}
	return model.AnswerResult{
		PersonID:      q.Person.ID,
		Mode:          ModeFlashcard.String(),
		Correct:       knew,
		UserAnswer:    userAnswer,
		CorrectAnswer: correct,
	}
}

// CheckTrueFalse compares the user's verdict with the statement's.
func CheckTrueFalse(q TrueFalse, answer bool) model.AnswerResult {
	return model.AnswerResult{
		PersonID:      q.Person.ID,
		Mode:          ModeTrueFalse.String(),
		Correct:       answer == q.IsTrue,
		UserAnswer:    boolWord(answer),
		CorrectAnswer: boolWord(q.IsTrue),
	}
}

// CheckMultipleChoice compares the selected option index with the
// correct one.
func CheckMultipleChoice(q MultipleChoice, selected int) model.AnswerResult {
	userAnswer := "(none)"
	if selected >= 0 && selected < len(q.Options) {
		userAnswer = q.Options[selected]
	}
	return model.AnswerResult{
		PersonID:      q.Person.ID,
		Mode:          ModeMultipleChoice.String(),
		Correct:       selected == q.CorrectIndex,
		UserAnswer:    userAnswer,
		CorrectAnswer: q.Options[q.CorrectIndex],
	}
}

// CheckFillBlank compares the typed text with the hidden part,
// ignoring surrounding and repeated whitespace.
func CheckFillBlank(q FillBlank, text string) model.AnswerResult {
	return model.AnswerResult{
		PersonID:      q.Person.ID,
		Mode:          ModeFillBlank.String(),
		Correct:       match.EqualNames(text, q.Missing),
		UserAnswer:    strings.TrimSpace(text),
		CorrectAnswer: q.Missing,
	}
}

// RecallCheck is the free-recall verdict: both lists must match for
// the answer to count as correct.
type RecallCheck struct {
	ParentsCorrect  bool
	SiblingsCorrect bool
	Result          model.AnswerResult
}

// CheckFreeRecall splits each answer on whitespace and compares the
// tokens as multisets against the person's family. For a person with
// no siblings, any answer in noSiblingsSet is accepted; a nil set
// falls back to DefaultNoSiblingsAnswers.
func CheckFreeRecall(q FreeRecall, parentsText, siblingsText string, noSiblingsSet []string) RecallCheck {
	if noSiblingsSet == nil {
		noSiblingsSet = DefaultNoSiblingsAnswers
	}
	p := q.Person

	parentsOK := match.EqualUnordered(strings.Fields(parentsText), p.Parents)

	var siblingsOK bool
	if len(p.Siblings) == 0 {
		for _, accepted := range noSiblingsSet {
			if match.EqualNames(siblingsText, accepted) {
				siblingsOK = true
				break
			}
		}
	} else {
		siblingsOK = match.EqualUnordered(strings.Fields(siblingsText), p.Siblings)
	}

	return RecallCheck{
		ParentsCorrect:  parentsOK,
		SiblingsCorrect: siblingsOK,
		Result: model.AnswerResult{
			PersonID:      p.ID,
			Mode:          ModeFreeRecall.String(),
			Correct:       parentsOK && siblingsOK,
			UserAnswer:    recallSummary(parentsText, siblingsText),
			CorrectAnswer: familySummary(p),
		},
	}
}

// CheckMatching verifies one pair: the chosen answer must exactly
// match the canonical relation answer of the person with the given id.
func CheckMatching(q Matching, roster []model.Person, personID, chosen string) model.AnswerResult {
	correct := ""
	for _, p := range roster {
		if p.ID == personID {
			correct = relationAnswer(p, q.Relation)
			break
		}
	}
	return model.AnswerResult{
		PersonID:      personID,
		Mode:          ModeMatching.String(),
		Correct:       chosen == correct,
		UserAnswer:    chosen,
		CorrectAnswer: correct,
	}
}

// MarkSpeed relabels an inner-question result as a speed-round answer.
func MarkSpeed(res model.AnswerResult) model.AnswerResult {
	res.Mode = ModeSpeedRound.String()
	return res
}

// SpeedTimeout scores an expired speed round as a miss.
func SpeedTimeout(q SpeedRound) model.AnswerResult {
	res := model.AnswerResult{
		Mode:       ModeSpeedRound.String(),
		UserAnswer: "(time ran out)",
		TimeMs:     q.BudgetMs,
	}
	switch inner := q.Inner.(type) {
	case TrueFalse:
		res.PersonID = inner.Person.ID
		res.CorrectAnswer = boolWord(inner.IsTrue)
	case MultipleChoice:
		res.PersonID = inner.Person.ID
		res.CorrectAnswer = inner.Options[inner.CorrectIndex]
	}
	return res
}

func familySummary(p model.Person) string {
	return fmt.Sprintf("parents: %s; siblings: %s",
		relationAnswer(p, RelationParents), relationAnswer(p, RelationSiblings))
}

func recallSummary(parentsText, siblingsText string) string {
	return fmt.Sprintf("parents: %s; siblings: %s",
		strings.TrimSpace(parentsText), strings.TrimSpace(siblingsText))
}

func boolWord(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
