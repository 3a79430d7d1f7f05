// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maayanb/kindrill/internal/leitner"
	"github.com/maayanb/kindrill/internal/model"
	"github.com/maayanb/kindrill/internal/quiz"
	"github.com/maayanb/kindrill/internal/session"
	"github.com/maayanb/kindrill/internal/store"
)

const speedTickInterval = 100 * time.Millisecond

type speedTickMsg time.Time

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7CB342"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	questionFrame = lipgloss.NewStyle().Padding(1, 2)
)

// recall input stages.
const (
	recallParents = iota
	recallSiblings
)

// Model implements the Bubble Tea drill UI.
type Model struct {
	cfg     model.Config
	mode    quiz.Mode
	store   *store.Store
	gen     *quiz.Generator
	rnd     *rand.Rand
	roster  []model.Person
	cards   map[string]model.LeitnerCard
	overall model.OverallStats

	stats     model.SessionStats
	startedAt time.Time

	question      quiz.Question
	lastPersonID  string
	questionStart time.Time

	flipped      bool
	matchIndex   int
	matchOptions []string
	input        textinput.Model
	recallStage  int
	recallFirst  string
	countdown    progress.Model
	deadline     time.Time

	feedback  *model.AnswerResult
	finished  bool
	saveError string

	width  int
	height int
}

// NewModel constructs a drill model. The overall stats and Leitner
// cards are loaded by the caller; the model owns them for the session
// and persists them when the session ends.
func NewModel(cfg model.Config, mode quiz.Mode, st *store.Store, roster []model.Person, overall model.OverallStats, rnd *rand.Rand) *Model {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	input := textinput.New()
	input.CharLimit = 120
	m := &Model{
		cfg:       cfg,
		mode:      mode,
		store:     st,
		gen:       quiz.NewGenerator(rnd),
		rnd:       rnd,
		roster:    roster,
		cards:     leitner.InitCards(roster, overall.LeitnerCards),
		overall:   overall,
		stats:     session.New(),
		startedAt: time.Now(),
		input:     input,
		countdown: progress.New(progress.WithDefaultGradient()),
	}
	m.nextQuestion()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if _, ok := m.question.(quiz.SpeedRound); ok {
		return m.speedTick()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case speedTickMsg:
		return m.handleSpeedTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		// Abandon the session without folding it into overall stats.
		return m, tea.Quit
	}

	if m.finished {
		switch msg.String() {
		case "enter", "r":
			m.stats = session.New()
			m.startedAt = time.Now()
			m.finished = false
			m.feedback = nil
			m.nextQuestion()
			return m, m.maybeSpeedTick()
		default:
			return m, tea.Quit
		}
	}

	if msg.Type == tea.KeyEsc {
		m.endSession()
		return m, nil
	}

	if m.feedback != nil {
		m.feedback = nil
		if m.stats.Total >= m.cfg.Questions {
			m.endSession()
			return m, nil
		}
		if q, ok := m.question.(quiz.Matching); ok && m.matchIndex < len(q.Pairs) {
			return m, nil
		}
		m.nextQuestion()
		return m, m.maybeSpeedTick()
	}

	switch q := m.question.(type) {
	case quiz.Flashcard:
		return m.handleFlashcardKey(q, msg)
	case quiz.TrueFalse:
		if res, ok := answerTrueFalse(q, msg); ok {
			m.applyResult(res)
		}
		return m, nil
	case quiz.MultipleChoice:
		if res, ok := answerMultipleChoice(q, msg); ok {
			m.applyResult(res)
		}
		return m, nil
	case quiz.Matching:
		return m.handleMatchingKey(q, msg)
	case quiz.FillBlank:
		return m.handleFillBlankKey(q, msg)
	case quiz.FreeRecall:
		return m.handleFreeRecallKey(q, msg)
	case quiz.SpeedRound:
		return m.handleSpeedKey(q, msg)
	}
	return m, nil
}

func (m *Model) handleFlashcardKey(q quiz.Flashcard, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.flipped {
		if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
			m.flipped = true
		}
		return m, nil
	}
	switch msg.String() {
	case "y":
		m.applyResult(quiz.CheckFlashcard(q, true))
	case "n":
		m.applyResult(quiz.CheckFlashcard(q, false))
	}
	return m, nil
}

func answerTrueFalse(q quiz.TrueFalse, msg tea.KeyMsg) (model.AnswerResult, bool) {
	switch msg.String() {
	case "t", "1":
		return quiz.CheckTrueFalse(q, true), true
	case "f", "2":
		return quiz.CheckTrueFalse(q, false), true
	}
	return model.AnswerResult{}, false
}

func answerMultipleChoice(q quiz.MultipleChoice, msg tea.KeyMsg) (model.AnswerResult, bool) {
	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(q.Options) {
			return quiz.CheckMultipleChoice(q, idx), true
		}
	}
	return model.AnswerResult{}, false
}

func (m *Model) handleMatchingKey(q quiz.Matching, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return m, nil
	}
	idx := int(key[0] - '1')
	if idx >= len(m.matchOptions) || m.matchIndex >= len(q.Pairs) {
		return m, nil
	}
	pair := q.Pairs[m.matchIndex]
	res := quiz.CheckMatching(q, m.roster, pair.PersonID, m.matchOptions[idx])
	m.matchIndex++
	m.applyResult(res)
	return m, nil
}

func (m *Model) handleFillBlankKey(q quiz.FillBlank, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.applyResult(quiz.CheckFillBlank(q, m.input.Value()))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleFreeRecallKey(q quiz.FreeRecall, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if m.recallStage == recallParents {
			m.recallFirst = m.input.Value()
			m.recallStage = recallSiblings
			m.input.SetValue("")
			return m, nil
		}
		check := quiz.CheckFreeRecall(q, m.recallFirst, m.input.Value(), m.cfg.NoSiblingsSet)
		m.applyResult(check.Result)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSpeedKey(q quiz.SpeedRound, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch inner := q.Inner.(type) {
	case quiz.TrueFalse:
		if res, ok := answerTrueFalse(inner, msg); ok {
			m.applyResult(quiz.MarkSpeed(res))
		}
	case quiz.MultipleChoice:
		if res, ok := answerMultipleChoice(inner, msg); ok {
			m.applyResult(quiz.MarkSpeed(res))
		}
	}
	return m, nil
}

func (m *Model) handleSpeedTick() (tea.Model, tea.Cmd) {
	q, ok := m.question.(quiz.SpeedRound)
	if !ok || m.feedback != nil || m.finished {
		return m, nil
	}
	if time.Now().After(m.deadline) {
		m.applyResult(quiz.SpeedTimeout(q))
		return m, nil
	}
	return m, m.speedTick()
}

func (m *Model) speedTick() tea.Cmd {
	return tea.Tick(speedTickInterval, func(t time.Time) tea.Msg {
		return speedTickMsg(t)
	})
}

func (m *Model) maybeSpeedTick() tea.Cmd {
	if _, ok := m.question.(quiz.SpeedRound); ok {
		return m.speedTick()
	}
	return nil
}

// applyResult folds one answer into the session, updates the person's
// Leitner card, and switches to the feedback view.
func (m *Model) applyResult(res model.AnswerResult) {
	if res.TimeMs == 0 {
		res.TimeMs = time.Since(m.questionStart).Milliseconds()
	}
	m.stats = session.Apply(m.stats, res)
	if card, ok := m.cards[res.PersonID]; ok {
		m.cards[res.PersonID] = leitner.UpdateCard(card, res.Correct, time.Now())
	}
	m.feedback = &res
}

func (m *Model) nextQuestion() {
	now := time.Now()
	m.flipped = false
	m.matchIndex = 0
	m.matchOptions = nil
	m.recallStage = recallParents
	m.recallFirst = ""
	m.input.SetValue("")
	m.questionStart = now

	person := leitner.SelectNext(m.rnd, m.roster, m.cards, m.lastPersonID, now)
	m.question = m.gen.Generate(m.mode, person, m.roster, m.cards, now)
	m.lastPersonID = person.ID

	switch q := m.question.(type) {
	case quiz.Matching:
		options := make([]string, len(q.Pairs))
		for i, pair := range q.Pairs {
			options[i] = pair.Answer
		}
		m.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		m.matchOptions = options
	case quiz.FillBlank, quiz.FreeRecall:
		m.input.Focus()
	case quiz.SpeedRound:
		m.deadline = now.Add(time.Duration(q.BudgetMs) * time.Millisecond)
	}
}

// endSession merges the session into the overall stats, persists
// everything, and switches to the summary view.
func (m *Model) endSession() {
	m.feedback = nil
	m.finished = true
	if m.stats.Total == 0 {
		return
	}

	m.overall = session.MergeOverall(m.overall, m.stats, m.cards, m.roster)
	ctx := context.Background()
	if err := m.store.SaveOverall(ctx, m.overall); err != nil {
		m.saveError = fmt.Sprintf("failed to save stats: %v", err)
		logErrf("%s\n", m.saveError)
	}
	endedAt := time.Now()
	rec := model.SessionRecord{
		EndedAt:    endedAt.UnixMilli(),
		Mode:       m.mode.String(),
		Questions:  m.stats.Total,
		Correct:    m.stats.Correct,
		BestStreak: m.stats.BestStreak,
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	}
	if _, err := m.store.InsertSession(ctx, rec); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	var b strings.Builder
	switch {
	case m.finished:
		b.WriteString(m.summaryView())
	case m.feedback != nil:
		b.WriteString(m.feedbackView(contentWidth))
	default:
		b.WriteString(m.questionView(contentWidth))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.footerLine()))
	return questionFrame.Render(b.String())
}

func (m *Model) questionView(width int) string {
	var b strings.Builder
	switch q := m.question.(type) {
	case quiz.Flashcard:
		writeWrapped(&b, promptStyle, flashcardFront(q), width)
		if m.flipped {
			b.WriteString("\n")
			writeWrapped(&b, accentStyle, flashcardBack(q), width)
			b.WriteString("\n")
			b.WriteString(optionStyle.Render("Did you know it? (y/n)"))
		} else {
			b.WriteString("\n")
			b.WriteString(optionStyle.Render("Press space to flip"))
		}
	case quiz.TrueFalse:
		writeWrapped(&b, promptStyle, q.Statement, width)
		b.WriteString("\n")
		b.WriteString(optionStyle.Render("True (t) or false (f)?"))
	case quiz.MultipleChoice:
		writeWrapped(&b, promptStyle, q.Prompt, width)
		b.WriteString("\n")
		for i, opt := range q.Options {
			b.WriteString(optionStyle.Render(fmt.Sprintf("%d. %s", i+1, opt)))
			b.WriteString("\n")
		}
	case quiz.Matching:
		writeWrapped(&b, promptStyle,
			fmt.Sprintf("Match each person with their %s", q.Relation), width)
		b.WriteString("\n")
		if m.matchIndex < len(q.Pairs) {
			b.WriteString(accentStyle.Render(q.Pairs[m.matchIndex].Name))
			b.WriteString("\n")
		}
		for i, opt := range m.matchOptions {
			b.WriteString(optionStyle.Render(fmt.Sprintf("%d. %s", i+1, opt)))
			b.WriteString("\n")
		}
	case quiz.FillBlank:
		writeWrapped(&b, promptStyle, q.Prompt, width)
		if len(q.Visible) > 0 {
			b.WriteString("\n")
			writeWrapped(&b, accentStyle, strings.Join(q.Visible, " ")+" _____", width)
		}
		b.WriteString("\n")
		b.WriteString(m.input.View())
	case quiz.FreeRecall:
		writeWrapped(&b, promptStyle,
			fmt.Sprintf("Recall %s's family", q.Person.Name), width)
		b.WriteString("\n")
		if m.recallStage == recallParents {
			b.WriteString(optionStyle.Render("Parents: "))
		} else {
			b.WriteString(optionStyle.Render("Siblings: "))
		}
		b.WriteString(m.input.View())
	case quiz.SpeedRound:
		b.WriteString(m.speedView(q, width))
	}
	return b.String()
}

func (m *Model) speedView(q quiz.SpeedRound, width int) string {
	var b strings.Builder
	remaining := time.Until(m.deadline)
	if remaining < 0 {
		remaining = 0
	}
	percent := float64(remaining.Milliseconds()) / float64(q.BudgetMs)
	b.WriteString(m.countdown.ViewAs(percent))
	b.WriteString("\n\n")
	switch inner := q.Inner.(type) {
	case quiz.TrueFalse:
		writeWrapped(&b, promptStyle, inner.Statement, width)
		b.WriteString("\n")
		b.WriteString(optionStyle.Render("True (t) or false (f)?"))
	case quiz.MultipleChoice:
		writeWrapped(&b, promptStyle, inner.Prompt, width)
		b.WriteString("\n")
		for i, opt := range inner.Options {
			b.WriteString(optionStyle.Render(fmt.Sprintf("%d. %s", i+1, opt)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) feedbackView(width int) string {
	var b strings.Builder
	res := m.feedback
	if res.Correct {
		b.WriteString(correctStyle.Render("Correct!"))
	} else {
		b.WriteString(wrongStyle.Render("Wrong."))
		b.WriteString("\n")
		writeWrapped(&b, optionStyle, "Answer: "+res.CorrectAnswer, width)
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Press any key to continue"))
	return b.String()
}

func (m *Model) summaryView() string {
	var b strings.Builder
	b.WriteString(summaryStyle.Render("Session finished"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Questions: %d\n", m.stats.Total))
	b.WriteString(fmt.Sprintf("Correct: %d\n", m.stats.Correct))
	b.WriteString(fmt.Sprintf("Wrong: %d\n", m.stats.Wrong))
	b.WriteString(fmt.Sprintf("Accuracy: %.1f%%\n", m.stats.Accuracy))
	b.WriteString(fmt.Sprintf("Best streak: %d\n", m.stats.BestStreak))
	if m.saveError != "" {
		b.WriteString("\n")
		b.WriteString(wrongStyle.Render(m.saveError))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Enter for another session, any other key to quit"))
	return b.String()
}

func (m *Model) footerLine() string {
	return fmt.Sprintf("%s | %d/%d | streak %d | esc ends the session",
		m.mode, m.stats.Total, m.cfg.Questions, m.stats.Streak)
}

func flashcardFront(q quiz.Flashcard) string {
	if q.ShowSide == quiz.SideFamily {
		return fmt.Sprintf("parents: %s | siblings: %s",
			strings.Join(q.Person.Parents, " "), siblingsLabel(q.Person))
	}
	return q.Person.Name
}

func flashcardBack(q quiz.Flashcard) string {
	if q.ShowSide == quiz.SideFamily {
		return q.Person.Name
	}
	return fmt.Sprintf("parents: %s | siblings: %s",
		strings.Join(q.Person.Parents, " "), siblingsLabel(q.Person))
}

func siblingsLabel(p model.Person) string {
	if len(p.Siblings) == 0 {
		return "none"
	}
	return strings.Join(p.Siblings, " ")
}

func writeWrapped(b *strings.Builder, style lipgloss.Style, text string, width int) {
	for i, line := range wrapText(text, width) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(style.Render(line))
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
