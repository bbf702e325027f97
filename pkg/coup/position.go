package coup

import "math/rand"

// noPriority is the sentinel PriorityPlayer value for AwaitingProposal,
// where no player currently holds priority.
const noPriority = -1

// Position is an immutable snapshot of a Coup game. Every exported method
// that advances the game returns a new Position rather than mutating the
// receiver; the zero-cost path for that is Clone(), deep-copying the two
// owned slices (Deck and Players).
type Position struct {
	Turn           int
	CurrentPlayer  int
	PriorityPlayer int // noPriority only in AwaitingProposal

	Deck    []Character
	Players []Player

	Phase Phase

	// Proposal is the pending proposal's payload; Proposal.Kind ==
	// NoProposal when no proposal is pending, i.e. whenever Phase.Kind ==
	// AwaitingProposal.
	Proposal Proposal

	// HasBlockedWith and BlockedWith record the character a block was
	// made with; HasBlockedWith is true from the Block action until the
	// turn ends, spanning AwaitingProposalBlockResponse,
	// AwaitingChallengedBlockResponse, and (if the block was challenged
	// and failed) the following ResolveProposal.
	HasBlockedWith bool
	BlockedWith    Character
}

// New deals a fresh 15-card deck to numPlayers players (3-6), each
// starting with 2 coins and two face-down influence cards, and returns
// the initial Position (phase AwaitingProposal, player 0 to act).
func New(numPlayers int, rng *rand.Rand) Position {
	if numPlayers < 3 || numPlayers > 6 {
		panic("coup: numPlayers must be between 3 and 6")
	}

	deck := newDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	players := make([]Player, numPlayers)
	for i := range players {
		players[i] = Player{
			Money: 2,
			Influence: [2]InfluenceCard{
				{Character: deck[0]},
				{Character: deck[1]},
			},
		}
		deck = deck[2:]
	}

	return Position{
		Turn:           0,
		CurrentPlayer:  0,
		PriorityPlayer: noPriority,
		Deck:           deck,
		Players:        players,
		Phase:          Phase{Kind: AwaitingProposal},
	}
}

// Clone returns a deep copy of the Position; mutating the clone's Deck or
// Players never affects the receiver. Scalar and Phase/Proposal fields are
// value types and copy for free.
func (p Position) Clone() Position {
	c := p
	c.Deck = make([]Character, len(p.Deck))
	copy(c.Deck, p.Deck)
	c.Players = make([]Player, len(p.Players))
	copy(c.Players, p.Players)
	return c
}

// Winner returns the sole remaining player's index once every other
// player has lost both influence cards. ok is false while two or more
// players remain alive.
func (p Position) Winner() (player int, ok bool) {
	alive := -1
	count := 0
	for i, pl := range p.Players {
		if !pl.Eliminated() {
			alive = i
			count++
		}
	}
	if count == 1 {
		return alive, true
	}
	return -1, false
}

// otherPlayers returns the alive opponents of playerIdx, in turn order
// starting from the player after playerIdx.
func (p Position) otherPlayers(playerIdx int) []int {
	n := len(p.Players)
	others := make([]int, 0, n-1)
	for k := 1; k < n; k++ {
		idx := (playerIdx + k) % n
		if !p.Players[idx].Eliminated() {
			others = append(others, idx)
		}
	}
	return others
}

// nextLivingPlayer returns the next alive player after CurrentPlayer, for
// turn advance.
func (p Position) nextLivingPlayer() int {
	n := len(p.Players)
	idx := (p.CurrentPlayer + 1) % n
	for p.Players[idx].Eliminated() {
		idx = (idx + 1) % n
	}
	return idx
}

// nextPriorityPlayer returns the next alive player after PriorityPlayer
// (or CurrentPlayer, if no one currently holds priority), for priority
// rotation.
func (p Position) nextPriorityPlayer() int {
	n := len(p.Players)
	idx := p.PriorityPlayer
	if idx == noPriority {
		idx = p.CurrentPlayer
	}
	idx = (idx + 1) % n
	for p.Players[idx].Eliminated() {
		idx = (idx + 1) % n
	}
	return idx
}
