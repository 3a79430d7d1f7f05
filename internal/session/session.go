// Package session folds answer results into session statistics and
// merges finished sessions into the durable overall stats.
//
// All functions return new values; inputs are never mutated, so the
// orchestrating layer owns the read-modify-persist cycle exclusively.
package session

import (
	"github.com/maayanb/kindrill/internal/model"
)

// New returns empty session stats.
func New() model.SessionStats {
	return model.SessionStats{}
}

// Apply folds one answer into the running session stats.
func Apply(stats model.SessionStats, result model.AnswerResult) model.SessionStats {
	out := stats
	out.Results = append(append([]model.AnswerResult(nil), stats.Results...), result)
	out.Total++
	if result.Correct {
		out.Correct++
		out.Streak++
		if out.Streak > out.BestStreak {
			out.BestStreak = out.Streak
		}
	} else {
		out.Wrong++
		out.Streak = 0
	}
	out.Accuracy = float64(out.Correct) / float64(out.Total) * 100
	return out
}

// MergeOverall folds a finished session into the overall stats:
// totals, per-person upserts, and a snapshot of the Leitner cards.
// Names for new person entries are resolved from the roster.
func MergeOverall(overall model.OverallStats, stats model.SessionStats, cards map[string]model.LeitnerCard, people []model.Person) model.OverallStats {
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	out := overall
	out.TotalSessions++
	out.TotalQuestions += stats.Total
	out.TotalCorrect += stats.Correct

	out.PersonStats = make(map[string]model.PersonStats, len(overall.PersonStats))
	for id, ps := range overall.PersonStats {
		out.PersonStats[id] = ps
	}
	for _, result := range stats.Results {
		ps, ok := out.PersonStats[result.PersonID]
		if !ok {
			ps = model.PersonStats{
				PersonID: result.PersonID,
				Name:     names[result.PersonID],
			}
		}
		ps.TimesAsked++
		if result.Correct {
			ps.TimesCorrect++
		}
		ps.Accuracy = float64(ps.TimesCorrect) / float64(ps.TimesAsked) * 100
		out.PersonStats[result.PersonID] = ps
	}

	out.LeitnerCards = make(map[string]model.LeitnerCard, len(cards))
	for id, card := range cards {
		out.LeitnerCards[id] = card
	}
	return out
}
