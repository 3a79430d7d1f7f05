package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/maayanb/kindrill/internal/leitner"
	"github.com/maayanb/kindrill/internal/model"
)

const (
	// SpeedRoundBudgetMs is the answer budget for speed-round questions.
	SpeedRoundBudgetMs = 8000

	// NoSiblingsAnswer is the canonical answer for a person with an
	// empty siblings list.
	NoSiblingsAnswer = "no siblings"

	// OptionPlaceholder pads multiple-choice options when fewer than
	// three distinct distractors exist in the roster.
	OptionPlaceholder = "—"

	trueStatementProb  = 0.6
	speedTrueFalseProb = 0.6
	choiceParentsProb  = 0.4
	choiceSiblingsProb = 0.3
	distractorSample   = 5
	distractorCount    = 3
	matchingPairs      = 4
)

// Generator produces drill questions. The random source is injected so
// tests can supply a deterministic one.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator using the given random source, or a
// time-seeded one when rnd is nil.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// Generate builds a question for the given mode. The roster must be
// non-empty; generators never fail, they fall back to simpler
// questions when the roster cannot support the requested shape.
func (g *Generator) Generate(mode Mode, person model.Person, roster []model.Person, cards map[string]model.LeitnerCard, now time.Time) Question {
	switch mode {
	case ModeFlashcard:
		return g.Flashcard(person)
	case ModeTrueFalse:
		return g.TrueFalse(person, roster)
	case ModeMultipleChoice:
		return g.MultipleChoice(person, roster)
	case ModeMatching:
		return g.Matching(roster, cards, now)
	case ModeFillBlank:
		return g.FillBlank(person)
	case ModeFreeRecall:
		return g.FreeRecall(person)
	case ModeSpeedRound:
		return g.SpeedRound(person, roster)
	}
	panic(fmt.Sprintf("quiz: unhandled mode %v", mode))
}

// Flashcard picks a random side to show first.
func (g *Generator) Flashcard(p model.Person) Flashcard {
	side := SideName
	if g.rnd.Intn(2) == 1 {
		side = SideFamily
	}
	return Flashcard{Person: p, ShowSide: side}
}

// TrueFalse emits a true statement with probability 0.6, otherwise a
// false one built from another person's family member. When no value
// disjoint from the person's own family exists, it falls back to a
// true statement instead of failing.
func (g *Generator) TrueFalse(p model.Person, roster []model.Person) TrueFalse {
	if g.rnd.Float64() < trueStatementProb {
		return g.trueStatement(p)
	}
	rel := g.pickRelation()
	pool := distractorValues(p, roster, rel)
	if len(pool) == 0 {
		return g.trueStatement(p)
	}
	value := pool[g.rnd.Intn(len(pool))]
	return TrueFalse{
		Person:    p,
		Statement: relationStatement(p.Name, value, rel),
		IsTrue:    false,
	}
}

// MultipleChoice asks about parents (40%), siblings (30%), or the
// person's name given their family (30%).
func (g *Generator) MultipleChoice(p model.Person, roster []model.Person) MultipleChoice {
	var prompt, correct string
	var field func(model.Person) string

	switch r := g.rnd.Float64(); {
	case r < choiceParentsProb:
		prompt = fmt.Sprintf("Who are %s's parents?", p.Name)
		correct = relationAnswer(p, RelationParents)
		field = func(o model.Person) string { return relationAnswer(o, RelationParents) }
	case r < choiceParentsProb+choiceSiblingsProb:
		prompt = fmt.Sprintf("Who are %s's siblings?", p.Name)
		correct = relationAnswer(p, RelationSiblings)
		field = func(o model.Person) string { return relationAnswer(o, RelationSiblings) }
	default:
		prompt = fmt.Sprintf("Whose parents are %s and siblings are %s?",
			relationAnswer(p, RelationParents), relationAnswer(p, RelationSiblings))
		correct = p.Name
		field = func(o model.Person) string { return o.Name }
	}

	options, correctIndex := g.buildOptions(correct, p.ID, roster, field)
	return MultipleChoice{
		Person:       p,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// Matching selects up to four distinct people by repeated
// Leitner-weighted sampling, each pick excluding only the one before
// it, and pairs each name with its canonical relation answer.
func (g *Generator) Matching(roster []model.Person, cards map[string]model.LeitnerCard, now time.Time) Matching {
	rel := g.pickRelation()
	want := matchingPairs
	if len(roster) < want {
		want = len(roster)
	}

	seen := make(map[string]bool, want)
	pairs := make([]MatchPair, 0, want)
	lastID := ""
	for attempts := 0; len(pairs) < want && attempts < want*12; attempts++ {
		p := leitner.SelectNext(g.rnd, roster, cards, lastID, now)
		lastID = p.ID
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		pairs = append(pairs, MatchPair{
			PersonID: p.ID,
			Name:     p.Name,
			Answer:   relationAnswer(p, rel),
		})
	}
	return Matching{Relation: rel, Pairs: pairs}
}

// FillBlank hides one family member when the person has at least two
// in a list, otherwise degrades to asking for the single parent, and
// finally to asking for the name given all parents.
func (g *Generator) FillBlank(p model.Person) FillBlank {
	switch {
	case len(p.Parents) >= 2:
		hidden, visible := g.hideOne(p.Parents)
		return FillBlank{
			Person:  p,
			Prompt:  fmt.Sprintf("Fill in the missing parent of %s", p.Name),
			Visible: visible,
			Missing: hidden,
		}
	case len(p.Siblings) >= 2:
		hidden, visible := g.hideOne(p.Siblings)
		return FillBlank{
			Person:  p,
			Prompt:  fmt.Sprintf("Fill in the missing sibling of %s", p.Name),
			Visible: visible,
			Missing: hidden,
		}
	case len(p.Parents) == 1:
		return FillBlank{
			Person:  p,
			Prompt:  fmt.Sprintf("Who is %s's parent?", p.Name),
			Missing: p.Parents[0],
		}
	default:
		return FillBlank{
			Person:  p,
			Prompt:  "Whose parents are these?",
			Visible: append([]string(nil), p.Parents...),
			Missing: p.Name,
		}
	}
}

// FreeRecall carries just the person; checking does the work.
func (g *Generator) FreeRecall(p model.Person) FreeRecall {
	return FreeRecall{Person: p}
}

// SpeedRound wraps a true/false (60%) or multiple-choice (40%)
// question with a fixed time budget.
func (g *Generator) SpeedRound(p model.Person, roster []model.Person) SpeedRound {
	var inner Question
	if g.rnd.Float64() < speedTrueFalseProb {
		inner = g.TrueFalse(p, roster)
	} else {
		inner = g.MultipleChoice(p, roster)
	}
	return SpeedRound{Inner: inner, BudgetMs: SpeedRoundBudgetMs}
}

func (g *Generator) trueStatement(p model.Person) TrueFalse {
	rel := g.pickRelation()
	if rel == RelationParents && len(p.Parents) == 0 {
		rel = RelationSiblings
	}
	if rel == RelationSiblings && len(p.Siblings) == 0 {
		return TrueFalse{
			Person:    p,
			Statement: fmt.Sprintf("%s has no siblings", p.Name),
			IsTrue:    true,
		}
	}
	values := p.Parents
	if rel == RelationSiblings {
		values = p.Siblings
	}
	value := values[g.rnd.Intn(len(values))]
	return TrueFalse{
		Person:    p,
		Statement: relationStatement(p.Name, value, rel),
		IsTrue:    true,
	}
}

func (g *Generator) pickRelation() Relation {
	if g.rnd.Intn(2) == 1 {
		return RelationSiblings
	}
	return RelationParents
}

func (g *Generator) hideOne(values []string) (hidden string, visible []string) {
	idx := g.rnd.Intn(len(values))
	visible = make([]string, 0, len(values)-1)
	for i, v := range values {
		if i == idx {
			continue
		}
		visible = append(visible, v)
	}
	return values[idx], visible
}

// buildOptions samples up to five other people, extracts their field
// value as distractors, dedupes them, pads to three with placeholders,
// and shuffles the final option list.
func (g *Generator) buildOptions(correct, excludeID string, roster []model.Person, field func(model.Person) string) ([]string, int) {
	others := make([]model.Person, 0, len(roster))
	for _, o := range roster {
		if o.ID != excludeID {
			others = append(others, o)
		}
	}
	g.rnd.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	if len(others) > distractorSample {
		others = others[:distractorSample]
	}

	seen := map[string]bool{correct: true}
	distractors := make([]string, 0, distractorCount)
	for _, o := range others {
		if len(distractors) == distractorCount {
			break
		}
		v := field(o)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		distractors = append(distractors, v)
	}
	for len(distractors) < distractorCount {
		distractors = append(distractors, OptionPlaceholder)
	}

	options := append(distractors, correct)
	g.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	for i, opt := range options {
		if opt == correct {
			return options, i
		}
	}
	return options, 0
}

// relationAnswer is the canonical display string for a person's
// parents or siblings.
func relationAnswer(p model.Person, rel Relation) string {
	values := p.Parents
	if rel == RelationSiblings {
		values = p.Siblings
		if len(values) == 0 {
			return NoSiblingsAnswer
		}
	}
	return strings.Join(values, " ")
}

func relationStatement(name, value string, rel Relation) string {
	if rel == RelationSiblings {
		return fmt.Sprintf("%s is a sibling of %s", value, name)
	}
	return fmt.Sprintf("%s is a parent of %s", value, name)
}

// distractorValues collects relation values from other people that do
// not also belong to this person's family (or name).
func distractorValues(p model.Person, roster []model.Person, rel Relation) []string {
	own := make(map[string]bool, len(p.Parents)+len(p.Siblings)+1)
	own[p.Name] = true
	for _, v := range p.Parents {
		own[v] = true
	}
	for _, v := range p.Siblings {
		own[v] = true
	}

	seen := map[string]bool{}
	var pool []string
	for _, o := range roster {
		if o.ID == p.ID {
			continue
		}
		values := o.Parents
		if rel == RelationSiblings {
			values = o.Siblings
		}
		for _, v := range values {
			if own[v] || seen[v] {
				continue
			}
			seen[v] = true
			pool = append(pool, v)
		}
	}
	return pool
}
