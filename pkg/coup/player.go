package coup

// InfluenceCard is one of a player's two hidden character cards. A
// revealed card no longer grants influence but stays in the player's row.
type InfluenceCard struct {
	Character Character
	Revealed  bool
}

// Player holds a coin count and a pair of influence cards.
type Player struct {
	Money     int
	Influence [2]InfluenceCard
}

// Eliminated reports whether the player has no unrevealed influence left.
func (p Player) Eliminated() bool {
	return !p.Influence[0].alive() && !p.Influence[1].alive()
}

func (c InfluenceCard) alive() bool {
	return !c.Revealed
}

// activeCardIndexes returns the indexes (0 and/or 1) of the player's
// unrevealed influence cards, in slot order.
func (p Player) activeCardIndexes() []int {
	var idxs []int
	for i, c := range p.Influence {
		if c.alive() {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// findActiveCharacter returns the slot index of an unrevealed card matching
// character, if the player holds one.
func (p Player) findActiveCharacter(character Character) (int, bool) {
	for i, c := range p.Influence {
		if c.alive() && c.Character == character {
			return i, true
		}
	}
	return -1, false
}
