package session

import (
	"testing"

	"github.com/maayanb/kindrill/internal/model"
)

func result(personID string, correct bool) model.AnswerResult {
	return model.AnswerResult{PersonID: personID, Mode: "truefalse", Correct: correct}
}

func TestApplyCountersAndStreaks(t *testing.T) {
	stats := New()
	stats = Apply(stats, result("a", true))
	stats = Apply(stats, result("b", true))
	stats = Apply(stats, result("a", false))
	stats = Apply(stats, result("b", true))

	if stats.Total != 4 || stats.Correct != 3 || stats.Wrong != 1 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.Streak != 1 || stats.BestStreak != 2 {
		t.Fatalf("unexpected streaks: %+v", stats)
	}
	if stats.Accuracy != 75 {
		t.Fatalf("expected 75%% accuracy, got %v", stats.Accuracy)
	}
	if len(stats.Results) != 4 {
		t.Fatalf("expected 4 logged results, got %d", len(stats.Results))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	stats := Apply(New(), result("a", true))
	next := Apply(stats, result("b", false))
	if stats.Total != 1 || len(stats.Results) != 1 {
		t.Fatalf("input stats mutated: %+v", stats)
	}
	if next.Total != 2 {
		t.Fatalf("unexpected fold: %+v", next)
	}
}

func TestMergeOverallUpserts(t *testing.T) {
	people := []model.Person{
		{ID: "a", Name: "Ziv"},
		{ID: "b", Name: "Dana"},
	}
	cards := map[string]model.LeitnerCard{
		"a": {PersonID: "a", Box: 1, LastSeen: 5},
	}

	overall := model.NewOverallStats()
	overall.PersonStats["a"] = model.PersonStats{
		PersonID: "a", Name: "Ziv", TimesAsked: 2, TimesCorrect: 1, Accuracy: 50,
	}

	stats := New()
	stats = Apply(stats, result("a", true))
	stats = Apply(stats, result("b", false))

	merged := MergeOverall(overall, stats, cards, people)

	if merged.TotalSessions != 1 || merged.TotalQuestions != 2 || merged.TotalCorrect != 1 {
		t.Fatalf("unexpected totals: %+v", merged)
	}
	a := merged.PersonStats["a"]
	if a.TimesAsked != 3 || a.TimesCorrect != 2 {
		t.Fatalf("existing person not incremented: %+v", a)
	}
	b := merged.PersonStats["b"]
	if b.Name != "Dana" || b.TimesAsked != 1 || b.TimesCorrect != 0 || b.Accuracy != 0 {
		t.Fatalf("new person not created: %+v", b)
	}
	if merged.LeitnerCards["a"].Box != 1 {
		t.Fatalf("cards not snapshotted: %+v", merged.LeitnerCards)
	}
	// Source overall untouched.
	if overall.TotalSessions != 0 || overall.PersonStats["a"].TimesAsked != 2 {
		t.Fatalf("input overall mutated: %+v", overall)
	}
}

func TestMergeOverallOrderIndependentTotals(t *testing.T) {
	people := []model.Person{{ID: "a", Name: "Ziv"}, {ID: "b", Name: "Dana"}}
	results := []model.AnswerResult{
		result("a", true), result("b", false), result("a", true),
	}

	// One session with all three results.
	all := New()
	for _, r := range results {
		all = Apply(all, r)
	}
	oneShot := MergeOverall(model.NewOverallStats(), all, nil, people)

	// Session of one result, then a session with the remaining two.
	first := Apply(New(), results[0])
	rest := Apply(Apply(New(), results[1]), results[2])
	split := MergeOverall(model.NewOverallStats(), first, nil, people)
	split = MergeOverall(split, rest, nil, people)

	if oneShot.TotalQuestions != split.TotalQuestions || oneShot.TotalCorrect != split.TotalCorrect {
		t.Fatalf("aggregate totals differ: %+v vs %+v", oneShot, split)
	}
	for _, id := range []string{"a", "b"} {
		x, y := oneShot.PersonStats[id], split.PersonStats[id]
		if x.TimesAsked != y.TimesAsked || x.TimesCorrect != y.TimesCorrect {
			t.Fatalf("per-person counters differ for %s: %+v vs %+v", id, x, y)
		}
	}
}
