package quiz

import (
	"testing"

	"github.com/maayanb/kindrill/internal/model"
)

func TestCheckTrueFalse(t *testing.T) {
	p := model.Person{ID: "p1", Name: "Ziv"}
	q := TrueFalse{Person: p, Statement: "Tal is a parent of Ziv", IsTrue: true}
	if res := CheckTrueFalse(q, true); !res.Correct {
		t.Fatalf("matching verdict should be correct: %+v", res)
	}
	res := CheckTrueFalse(q, false)
	if res.Correct {
		t.Fatalf("mismatched verdict should be wrong")
	}
	if res.UserAnswer != "false" || res.CorrectAnswer != "true" {
		t.Fatalf("unexpected answer strings: %+v", res)
	}
	if res.PersonID != "p1" || res.Mode != ModeTrueFalse.String() {
		t.Fatalf("result must carry person and mode: %+v", res)
	}
}

func TestCheckMultipleChoice(t *testing.T) {
	q := MultipleChoice{
		Person:       model.Person{ID: "p1", Name: "Ziv"},
		Prompt:       "Who are Ziv's parents?",
		Options:      []string{"Gil Orly", "Rotem Tal", OptionPlaceholder, "Nir Hila"},
		CorrectIndex: 1,
	}
	if res := CheckMultipleChoice(q, 1); !res.Correct || res.UserAnswer != "Rotem Tal" {
		t.Fatalf("unexpected result: %+v", res)
	}
	res := CheckMultipleChoice(q, 3)
	if res.Correct || res.CorrectAnswer != "Rotem Tal" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res := CheckMultipleChoice(q, -1); res.Correct || res.UserAnswer != "(none)" {
		t.Fatalf("out-of-range selection should be wrong: %+v", res)
	}
}

func TestCheckFillBlankNormalizesWhitespace(t *testing.T) {
	q := FillBlank{
		Person:  model.Person{ID: "p1", Name: "Ziv"},
		Missing: "Rotem",
	}
	for _, text := range []string{"Rotem", "  Rotem  ", "\tRotem"} {
		if res := CheckFillBlank(q, text); !res.Correct {
			t.Fatalf("expected %q to match %q", text, q.Missing)
		}
	}
	if res := CheckFillBlank(q, "rotem"); res.Correct {
		t.Fatalf("comparison must stay case-sensitive")
	}
}

func TestCheckFreeRecallOrderInsensitive(t *testing.T) {
	q := FreeRecall{Person: model.Person{
		ID: "p1", Name: "Ziv",
		Parents:  []string{"Rotem", "Tal"},
		Siblings: []string{"Noa", "Amit"},
	}}
	check := CheckFreeRecall(q, "Tal Rotem", "Amit Noa", nil)
	if !check.ParentsCorrect || !check.SiblingsCorrect || !check.Result.Correct {
		t.Fatalf("order must not matter: %+v", check)
	}
	check = CheckFreeRecall(q, "Tal", "Amit Noa", nil)
	if check.ParentsCorrect || check.Result.Correct {
		t.Fatalf("missing parent must fail: %+v", check)
	}
	check = CheckFreeRecall(q, "Tal Tal", "Amit Noa", nil)
	if check.ParentsCorrect {
		t.Fatalf("duplicate token must not stand in for a missing one")
	}
}

func TestCheckFreeRecallNoSiblings(t *testing.T) {
	q := FreeRecall{Person: model.Person{
		ID: "p1", Name: "זיו",
		Parents: []string{"א", "ב"},
	}}
	for _, text := range []string{"", "   ", "none", "no siblings", "אין"} {
		check := CheckFreeRecall(q, "א ב", text, nil)
		if !check.SiblingsCorrect {
			t.Fatalf("expected %q to be accepted for no siblings", text)
		}
		if !check.Result.Correct {
			t.Fatalf("expected overall correct for %q: %+v", text, check.Result)
		}
	}
	if check := CheckFreeRecall(q, "א ב", "Someone", nil); check.SiblingsCorrect {
		t.Fatalf("a named sibling must not be accepted")
	}
}

func TestCheckFreeRecallCustomNoSiblingsSet(t *testing.T) {
	q := FreeRecall{Person: model.Person{ID: "p1", Name: "Ziv", Parents: []string{"A"}}}
	set := []string{"nope"}
	if check := CheckFreeRecall(q, "A", "none", set); check.SiblingsCorrect {
		t.Fatalf("custom set should replace the default")
	}
	if check := CheckFreeRecall(q, "A", "nope", set); !check.SiblingsCorrect {
		t.Fatalf("custom literal should be accepted")
	}
}

func TestCheckMatching(t *testing.T) {
	roster := testRoster()
	q := Matching{
		Relation: RelationParents,
		Pairs: []MatchPair{
			{PersonID: "p1", Name: "Ziv", Answer: "Rotem Tal"},
			{PersonID: "p2", Name: "Dana", Answer: "Gil Orly"},
		},
	}
	if res := CheckMatching(q, roster, "p1", "Rotem Tal"); !res.Correct {
		t.Fatalf("expected correct match: %+v", res)
	}
	res := CheckMatching(q, roster, "p1", "Gil Orly")
	if res.Correct || res.CorrectAnswer != "Rotem Tal" {
		t.Fatalf("expected wrong match with canonical answer: %+v", res)
	}
}

func TestCheckMatchingSiblingsCanonical(t *testing.T) {
	roster := testRoster()
	q := Matching{Relation: RelationSiblings}
	// p3 has no siblings; the canonical answer is the fixed literal.
	res := CheckMatching(q, roster, "p3", NoSiblingsAnswer)
	if !res.Correct {
		t.Fatalf("expected no-siblings literal to match: %+v", res)
	}
}

func TestSpeedRoundResults(t *testing.T) {
	p := model.Person{ID: "p1", Name: "Ziv"}
	inner := TrueFalse{Person: p, Statement: "s", IsTrue: false}
	q := SpeedRound{Inner: inner, BudgetMs: SpeedRoundBudgetMs}

	res := MarkSpeed(CheckTrueFalse(inner, false))
	if !res.Correct || res.Mode != ModeSpeedRound.String() {
		t.Fatalf("unexpected speed result: %+v", res)
	}

	timeout := SpeedTimeout(q)
	if timeout.Correct {
		t.Fatalf("timeout must count as a miss")
	}
	if timeout.PersonID != "p1" || timeout.CorrectAnswer != "false" {
		t.Fatalf("timeout must carry person and canonical answer: %+v", timeout)
	}
	if timeout.TimeMs != SpeedRoundBudgetMs {
		t.Fatalf("timeout should record the full budget: %+v", timeout)
	}
}

func TestCheckFlashcardSelfGrade(t *testing.T) {
	p := model.Person{ID: "p1", Name: "Ziv", Parents: []string{"Rotem"}, Siblings: nil}
	q := Flashcard{Person: p, ShowSide: SideName}
	res := CheckFlashcard(q, true)
	if !res.Correct || res.CorrectAnswer != "parents: Rotem; siblings: no siblings" {
		t.Fatalf("unexpected result: %+v", res)
	}
	q.ShowSide = SideFamily
	res = CheckFlashcard(q, false)
	if res.Correct || res.CorrectAnswer != "Ziv" {
		t.Fatalf("unexpected result: %+v", res)
	}
}
