package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/maayanb/kindrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "kindrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestRosterRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	people := []model.Person{
		{ID: "p1", Name: "זיו", Parents: []string{"רותם", "טל"}, Siblings: []string{"נועה", "עמית"}},
		{ID: "p2", Name: "Dana Lev", Parents: []string{"Gil"}, Siblings: nil},
	}
	if err := st.SaveRoster(ctx, people); err != nil {
		t.Fatalf("save roster: %v", err)
	}
	got, err := st.LoadRoster(ctx)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 people, got %d", len(got))
	}
	if got[0].Name != "זיו" || got[1].Name != "Dana Lev" {
		t.Fatalf("order not preserved: %+v", got)
	}
	if len(got[0].Parents) != 2 || got[0].Parents[0] != "רותם" {
		t.Fatalf("parents not preserved: %+v", got[0])
	}
	if len(got[1].Siblings) != 0 {
		t.Fatalf("empty siblings not preserved: %+v", got[1])
	}

	// Re-saving replaces the roster wholesale.
	if err := st.SaveRoster(ctx, people[:1]); err != nil {
		t.Fatalf("save roster: %v", err)
	}
	got, err = st.LoadRoster(ctx)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected replacement, got %d people", len(got))
	}
}

func TestLoadOverallDefaultsWhenEmpty(t *testing.T) {
	st := openTestStore(t)
	overall, err := st.LoadOverall(context.Background())
	if err != nil {
		t.Fatalf("load overall: %v", err)
	}
	if overall.TotalSessions != 0 || overall.TotalQuestions != 0 || overall.TotalCorrect != 0 {
		t.Fatalf("expected zero totals: %+v", overall)
	}
	if overall.PersonStats == nil || overall.LeitnerCards == nil {
		t.Fatalf("maps must be initialized")
	}
}

func TestOverallRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	overall := model.NewOverallStats()
	overall.TotalSessions = 3
	overall.TotalQuestions = 30
	overall.TotalCorrect = 21
	overall.PersonStats["p1"] = model.PersonStats{
		PersonID: "p1", Name: "Ziv", TimesAsked: 10, TimesCorrect: 7,
	}
	overall.LeitnerCards["p1"] = model.LeitnerCard{
		PersonID: "p1", Box: 2, LastSeen: 12345, CorrectStreak: 4,
	}

	if err := st.SaveOverall(ctx, overall); err != nil {
		t.Fatalf("save overall: %v", err)
	}
	got, err := st.LoadOverall(ctx)
	if err != nil {
		t.Fatalf("load overall: %v", err)
	}
	if got.TotalSessions != 3 || got.TotalQuestions != 30 || got.TotalCorrect != 21 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	ps := got.PersonStats["p1"]
	if ps.TimesAsked != 10 || ps.TimesCorrect != 7 || ps.Accuracy != 70 {
		t.Fatalf("unexpected person stats: %+v", ps)
	}
	card := got.LeitnerCards["p1"]
	if card.Box != 2 || card.LastSeen != 12345 || card.CorrectStreak != 4 {
		t.Fatalf("unexpected card: %+v", card)
	}

	// Saving again overwrites rather than accumulating.
	if err := st.SaveOverall(ctx, got); err != nil {
		t.Fatalf("save overall: %v", err)
	}
	again, err := st.LoadOverall(ctx)
	if err != nil {
		t.Fatalf("load overall: %v", err)
	}
	if again.TotalSessions != 3 || len(again.PersonStats) != 1 {
		t.Fatalf("save must replace: %+v", again)
	}
}

func TestSessionHistoryAndReset(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := model.SessionRecord{
			EndedAt:    int64(1000 + i),
			Mode:       "choice",
			Questions:  10,
			Correct:    7 + i,
			BestStreak: 4,
			DurationMs: 60000,
		}
		if _, err := st.InsertSession(ctx, rec); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}
	records, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(records))
	}
	if records[0].EndedAt != 1000 || records[2].Correct != 9 {
		t.Fatalf("unexpected history: %+v", records)
	}

	if err := st.ResetStats(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	records, err = st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history after reset")
	}
	overall, err := st.LoadOverall(ctx)
	if err != nil {
		t.Fatalf("load overall: %v", err)
	}
	if overall.TotalSessions != 0 || len(overall.LeitnerCards) != 0 {
		t.Fatalf("expected zeroed stats after reset: %+v", overall)
	}
}
