package coup

import "math/rand"

// Determine returns a Position consistent with what perspective can
// observe: every player's money, every revealed card, perspective's own
// unrevealed cards, all phase state, and the turn counter are preserved.
// Every other player's unrevealed cards are pooled with the deck, the pool
// is shuffled once, and replacements are dealt back into the same slots
// with the rest forming the new deck, preserving both the 15-card
// invariant and the multiset of unknown characters. Determine never
// mutates p.
func (p Position) Determine(rng *rand.Rand, perspective int) Position {
	d := p.Clone()

	type slot struct{ player, card int }
	var slots []slot
	pool := d.Deck
	for _, opponent := range d.otherPlayers(perspective) {
		for _, cardIdx := range d.Players[opponent].activeCardIndexes() {
			slots = append(slots, slot{opponent, cardIdx})
			pool = append(pool, d.Players[opponent].Influence[cardIdx].Character)
		}
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for i, s := range slots {
		d.Players[s.player].Influence[s.card].Character = pool[i]
	}
	d.Deck = pool[len(slots):]

	return d
}
