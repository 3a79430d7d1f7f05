// Package leitner implements 3-box spaced-repetition selection.
//
// Each person owns one card. Correct answers promote the card up to
// box 2, any miss resets it to box 0. Selection is weighted random:
// weak boxes weigh more, and people not seen recently get an additive
// recency bonus. Functions never mutate their inputs.
package leitner

import (
	"math/rand"
	"time"

	"github.com/maayanb/kindrill/internal/model"
)

// MaxBox is the highest Leitner box.
const MaxBox = 2

// boxWeights maps box number to selection weight. Box 0 (new/weak)
// is resurfaced five times as often as box 2 (well-known).
var boxWeights = [MaxBox + 1]float64{5, 2, 1}

const (
	recencyBonusCap = 10.0
	millisPerMinute = 60000.0
)

// InitCards returns a card mapping covering every person: existing
// cards are kept unchanged and a fresh box-0 card is added for every
// person without one. Cards for people missing from the roster are
// kept too; pruning them is the caller's concern.
func InitCards(people []model.Person, existing map[string]model.LeitnerCard) map[string]model.LeitnerCard {
	cards := make(map[string]model.LeitnerCard, len(people)+len(existing))
	for id, card := range existing {
		cards[id] = card
	}
	for _, p := range people {
		if _, ok := cards[p.ID]; !ok {
			cards[p.ID] = model.LeitnerCard{PersonID: p.ID}
		}
	}
	return cards
}

// SelectNext picks the next person to quiz by weighted random sampling.
// The excluded id (the previous pick) is skipped unless the roster has
// exactly one person, in which case that person is always returned.
// People without a card are weighted as box 0, never seen.
func SelectNext(rnd *rand.Rand, people []model.Person, cards map[string]model.LeitnerCard, excludeID string, now time.Time) model.Person {
	if len(people) == 1 {
		return people[0]
	}

	candidates := make([]model.Person, 0, len(people))
	for _, p := range people {
		if p.ID == excludeID {
			continue
		}
		candidates = append(candidates, p)
	}

	total := 0.0
	weights := make([]float64, len(candidates))
	for i, p := range candidates {
		w := cardWeight(cards[p.ID], now)
		weights[i] = w
		total += w
	}

	r := rnd.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return candidates[i]
		}
	}
	// Floating-point leftovers land on the last candidate.
	return candidates[len(candidates)-1]
}

// UpdateCard returns the card after one answer. Correct promotes the
// box (capped at MaxBox) and extends the streak; incorrect resets both
// to zero. The input card is not modified.
func UpdateCard(card model.LeitnerCard, correct bool, now time.Time) model.LeitnerCard {
	out := card
	out.LastSeen = now.UnixMilli()
	if correct {
		if out.Box < MaxBox {
			out.Box++
		}
		out.CorrectStreak++
		return out
	}
	out.Box = 0
	out.CorrectStreak = 0
	return out
}

func cardWeight(card model.LeitnerCard, now time.Time) float64 {
	box := card.Box
	if box > MaxBox {
		box = MaxBox
	}
	if box < 0 {
		box = 0
	}
	bonus := recencyBonusCap
	if card.LastSeen > 0 {
		minutes := float64(now.UnixMilli()-card.LastSeen) / millisPerMinute
		if minutes < bonus {
			bonus = minutes
		}
	}
	return boxWeights[box] + bonus
}
