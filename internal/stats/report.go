// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/maayanb/kindrill/internal/model"
	"github.com/maayanb/kindrill/internal/store"
)

const sparkChars = " .:-=+*#%@"

const terminalWidthBackup = 80

// Report bundles everything the stats command renders.
type Report struct {
	Overall  model.OverallStats
	Sessions []model.SessionRecord
}

// BuildReport loads the durable stats and session history.
func BuildReport(ctx context.Context, st *store.Store) (Report, error) {
	overall, err := st.LoadOverall(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load overall stats: %w", err)
	}
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load session history: %w", err)
	}
	return Report{Overall: overall, Sessions: sessions}, nil
}

// Render prints the report: summary, per-person table, and a session
// accuracy sparkline sized to the terminal.
func Render(w io.Writer, report Report) error {
	width := terminalWidth()

	overall := report.Overall
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", overall.TotalSessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Questions: %d\n", overall.TotalQuestions); err != nil {
		return err
	}
	accuracy := 0.0
	if overall.TotalQuestions > 0 {
		accuracy = float64(overall.TotalCorrect) / float64(overall.TotalQuestions) * 100
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.1f%%\n", accuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if err := renderPersonTable(w, overall); err != nil {
		return err
	}
	return renderSessionCurve(w, report.Sessions, width)
}

func renderPersonTable(w io.Writer, overall model.OverallStats) error {
	if len(overall.PersonStats) == 0 {
		_, err := fmt.Fprintln(w, "No people quizzed yet.")
		return err
	}
	people := RankByAccuracy(overall.PersonStats)

	if _, err := fmt.Fprintln(w, "Per-Person (weakest first)"); err != nil {
		return err
	}
	headers := []string{"Name", "Accuracy", "Asked", "Correct", "Box"}
	rows := make([][]string, 0, len(people))
	for _, ps := range people {
		rows = append(rows, []string{
			ps.Name,
			fmt.Sprintf("%.1f%%", ps.Accuracy),
			fmt.Sprintf("%d", ps.TimesAsked),
			fmt.Sprintf("%d", ps.TimesCorrect),
			fmt.Sprintf("%d", overall.LeitnerCards[ps.PersonID].Box),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderSessionCurve(w io.Writer, sessions []model.SessionRecord, width int) error {
	if len(sessions) == 0 {
		return nil
	}
	values := make([]float64, len(sessions))
	for i, rec := range sessions {
		if rec.Questions > 0 {
			values[i] = float64(rec.Correct) / float64(rec.Questions) * 100
		}
	}
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if _, err := fmt.Fprintln(w, "Session accuracy (oldest to newest)"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, Sparkline(values))
	return err
}

// RankByAccuracy sorts per-person stats weakest first; ties break by
// fewest questions asked, then by name.
func RankByAccuracy(stats map[string]model.PersonStats) []model.PersonStats {
	people := make([]model.PersonStats, 0, len(stats))
	for _, ps := range stats {
		people = append(people, ps)
	}
	sort.Slice(people, func(i, j int) bool {
		if people[i].Accuracy != people[j].Accuracy {
			return people[i].Accuracy < people[j].Accuracy
		}
		if people[i].TimesAsked != people[j].TimesAsked {
			return people[i].TimesAsked < people[j].TimesAsked
		}
		return people[i].Name < people[j].Name
	})
	return people
}

// WeakestPeople returns the lowest-accuracy people, at most top.
func WeakestPeople(stats map[string]model.PersonStats, top int) []model.PersonStats {
	people := RankByAccuracy(stats)
	if top <= 0 || top > len(people) {
		top = len(people)
	}
	return people[:top]
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
