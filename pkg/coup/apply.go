package coup

import "math/rand"

// Apply returns the Position that results from playing action against p.
// p itself is never mutated. action must be a member of p.Actions(); any
// other action is a caller bug and yields an *IllegalActionError. Every
// nondeterministic step (card reshuffles) draws from rng; rng is the only
// source of nondeterminism and apply never reads a global source.
func (p Position) Apply(action Action, rng *rand.Rand) (Position, error) {
	if !p.isLegal(action) {
		return Position{}, &IllegalActionError{Action: action}
	}

	game := p.Clone()

	switch action.Kind {
	case Income:
		game.Players[action.Player].Money++
		game.advanceTurn()

	case Coup:
		game.Players[game.CurrentPlayer].Money -= 7
		game.Phase = Phase{Kind: AwaitingLoseInfluence, Loser: action.Target, EndTurn: true}
		game.PriorityPlayer = action.Target

	case Propose:
		prop := action.proposal()
		if prop.Kind == Assassinate {
			game.Players[game.CurrentPlayer].Money -= 3
		}
		game.Proposal = prop
		game.Phase = Phase{Kind: AwaitingProposalResponse, RemainingPasses: len(game.otherPlayers(game.CurrentPlayer))}
		game.PriorityPlayer = game.nextPriorityPlayer()

	case Block:
		blocker := game.PriorityPlayer
		game.HasBlockedWith = true
		game.BlockedWith = action.Character
		game.Phase = Phase{Kind: AwaitingProposalBlockResponse, Blocker: blocker}
		game.PriorityPlayer = noPriority
		game.advancePriority()

	case Relent:
		game.advanceTurn()

	case Challenge:
		switch game.Phase.Kind {
		case AwaitingProposalResponse:
			game.Phase = Phase{Kind: AwaitingChallengedProposalResponse, Challenger: action.Player}
			game.PriorityPlayer = game.CurrentPlayer
		case AwaitingProposalBlockResponse:
			blocker := game.Phase.Blocker
			game.Phase = Phase{Kind: AwaitingChallengedBlockResponse, Blocker: blocker, Challenger: action.Player}
			game.PriorityPlayer = blocker
		}

	case Lose:
		game.loseInfluenceCard(action.Player, action.CardIdx)
		switch game.Phase.Kind {
		case AwaitingChallengedProposalResponse:
			// The challenged claim was a bluff; the proposal never
			// resolves.
			game.advanceTurn()
		case AwaitingChallengedBlockResponse:
			game.PriorityPlayer = game.CurrentPlayer
			game.Phase = Phase{Kind: ResolveProposal}
			if game.Players[game.CurrentPlayer].Eliminated() {
				game.advanceTurn()
			}
		case AwaitingLoseInfluence:
			endTurn := game.Phase.EndTurn
			game.PriorityPlayer = game.CurrentPlayer
			game.Phase = Phase{Kind: ResolveProposal}
			if endTurn {
				game.advanceTurn()
			}
			if game.Players[game.CurrentPlayer].Eliminated() {
				game.advanceTurn()
			}
		}

	case Reveal:
		game.replaceInfluenceCard(action.Player, action.CardIdx, rng)
		switch game.Phase.Kind {
		case AwaitingChallengedBlockResponse:
			challenger := game.Phase.Challenger
			game.Phase = Phase{Kind: AwaitingLoseInfluence, Loser: challenger, EndTurn: true}
			game.PriorityPlayer = challenger
		case AwaitingChallengedProposalResponse:
			// The proposer proved the claim; the challenger loses a
			// card, but the original proposal still has an effect to
			// resolve afterward, so the turn does not end here.
			challenger := game.Phase.Challenger
			game.Phase = Phase{Kind: AwaitingLoseInfluence, Loser: challenger, EndTurn: false}
			game.PriorityPlayer = challenger
		}

	case Pass:
		switch game.Phase.Kind {
		case AwaitingProposalBlockResponse:
			game.advancePriority()
		case AwaitingProposalResponse:
			game.Phase.RemainingPasses--
			if game.Phase.RemainingPasses == 0 {
				game.Phase = Phase{Kind: ResolveProposal}
				game.PriorityPlayer = game.CurrentPlayer
			} else {
				game.advancePriority()
			}
		}

	case Resolve:
		game.resolveProposal(rng)
	}

	return game, nil
}

// isLegal reports whether action is a member of p.Actions().
func (p Position) isLegal(action Action) bool {
	for _, a := range p.Actions() {
		if a == action {
			return true
		}
	}
	return false
}

// resolveProposal applies the pending proposal's effect, per the
// ResolveProposal transition table.
func (p *Position) resolveProposal(rng *rand.Rand) {
	switch p.Proposal.Kind {
	case ForeignAid:
		p.Players[p.CurrentPlayer].Money += 2
		p.advanceTurn()

	case Tax:
		p.Players[p.CurrentPlayer].Money += 3
		p.advanceTurn()

	case Assassinate:
		target := p.Proposal.Target
		if p.Players[target].Eliminated() {
			// Target was already eliminated by a lost challenge.
			p.advanceTurn()
		} else {
			p.Phase = Phase{Kind: AwaitingLoseInfluence, Loser: target, EndTurn: true}
		}

	case Steal:
		target := p.Proposal.Target
		n := p.Players[target].Money
		if n > 2 {
			n = 2
		}
		if n == 0 {
			// The enumerator forbids proposing Steal against a 0-coin
			// target, but a target can reach 0 coins between proposal
			// and resolve via a different effect. Reaching this point
			// means that invariant was violated elsewhere — a
			// programming bug, not a recoverable game state.
			panic("coup: cannot steal from a target with $0")
		}
		p.Players[p.CurrentPlayer].Money += n
		p.Players[target].Money -= n
		p.advanceTurn()

	case Exchange:
		p.replaceInfluenceCard(p.CurrentPlayer, p.Proposal.CardIdx, rng)
		p.advanceTurn()
	}
}

// advanceTurn resets phase state to AwaitingProposal, clears priority and
// any pending proposal, increments Turn, and moves CurrentPlayer to the
// next alive player.
func (p *Position) advanceTurn() {
	p.Phase = Phase{Kind: AwaitingProposal}
	p.HasBlockedWith = false
	p.BlockedWith = 0
	p.PriorityPlayer = noPriority
	p.Proposal = Proposal{}
	p.Turn++
	p.CurrentPlayer = p.nextLivingPlayer()
}

// advancePriority moves PriorityPlayer to the next alive player after the
// current priority holder (or CurrentPlayer, if none), skipping the
// blocker a second time when the result would otherwise land on them
// during a block-response window.
func (p *Position) advancePriority() {
	p.PriorityPlayer = p.nextPriorityPlayer()
	if p.Phase.Kind == AwaitingProposalBlockResponse && p.PriorityPlayer == p.Phase.Blocker {
		p.PriorityPlayer = p.nextPriorityPlayer()
	}
}

// loseInfluenceCard flips a card face-up; a revealed card grants no
// influence and cannot be targeted again.
func (p *Position) loseInfluenceCard(playerIdx, cardIdx int) {
	p.Players[playerIdx].Influence[cardIdx].Revealed = true
}

// replaceInfluenceCard returns the named card to the deck, reshuffles,
// and draws a replacement into the same slot — used by both Reveal (a
// won challenge) and Exchange.
func (p *Position) replaceInfluenceCard(playerIdx, cardIdx int, rng *rand.Rand) {
	card := p.Players[playerIdx].Influence[cardIdx]
	if card.Revealed {
		panic("coup: cannot replace a revealed influence card")
	}

	p.Deck = append(p.Deck, card.Character)
	rng.Shuffle(len(p.Deck), func(i, j int) { p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i] })

	p.Players[playerIdx].Influence[cardIdx] = InfluenceCard{Character: p.Deck[0]}
	p.Deck = p.Deck[1:]
}
