// Package model defines shared data structures.
package model

// Person is one roster entry: a name plus its family relations.
// People are created by the parser and never mutated afterwards;
// re-importing a roster replaces them wholesale.
type Person struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Parents  []string `json:"parents"`
	Siblings []string `json:"siblings"`
}

// LeitnerCard tracks spaced-repetition state for one person.
// Box 0 is new/weak, 2 is well-known. LastSeen is Unix milliseconds,
// 0 when the person has never been quizzed.
type LeitnerCard struct {
	PersonID      string `json:"personId"`
	Box           int    `json:"box"`
	LastSeen      int64  `json:"lastSeen"`
	CorrectStreak int    `json:"correctStreak"`
}

// AnswerResult records the outcome of one answered question.
type AnswerResult struct {
	PersonID      string `json:"personId"`
	Mode          string `json:"mode"`
	Correct       bool   `json:"correct"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	TimeMs        int64  `json:"timeMs,omitempty"`
}

// SessionStats accumulates counters for the active session.
type SessionStats struct {
	Correct    int            `json:"correct"`
	Wrong      int            `json:"wrong"`
	Total      int            `json:"total"`
	Streak     int            `json:"streak"`
	BestStreak int            `json:"bestStreak"`
	Accuracy   float64        `json:"accuracy"`
	Results    []AnswerResult `json:"results"`
}

// PersonStats accumulates per-person accuracy across all sessions.
type PersonStats struct {
	PersonID     string  `json:"personId"`
	Name         string  `json:"name"`
	TimesAsked   int     `json:"timesAsked"`
	TimesCorrect int     `json:"timesCorrect"`
	Accuracy     float64 `json:"accuracy"`
}

// OverallStats is the durable cross-session state: totals, per-person
// stats, and the Leitner card mapping.
type OverallStats struct {
	TotalSessions  int                    `json:"totalSessions"`
	TotalQuestions int                    `json:"totalQuestions"`
	TotalCorrect   int                    `json:"totalCorrect"`
	PersonStats    map[string]PersonStats `json:"personStats"`
	LeitnerCards   map[string]LeitnerCard `json:"leitnerCards"`
}

// NewOverallStats returns empty overall stats with initialized maps.
func NewOverallStats() OverallStats {
	return OverallStats{
		PersonStats:  map[string]PersonStats{},
		LeitnerCards: map[string]LeitnerCard{},
	}
}

// Config defines drill session settings.
type Config struct {
	Mode          string
	Questions     int
	NoSiblingsSet []string
}

// SessionRecord summarizes a finished session for the history table.
type SessionRecord struct {
	SessionID  int64
	EndedAt    int64
	Mode       string
	Questions  int
	Correct    int
	BestStreak int
	DurationMs int64
}
