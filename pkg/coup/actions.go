package coup

// Actions returns the exact, ordered list of actions legal in p's current
// phase. It never mutates p. Calling Actions on a terminal Position (see
// Winner) is well-defined — it simply returns the sole survivor's
// AwaitingProposal actions — but callers should check Winner first.
func (p Position) Actions() []Action {
	actions := make([]Action, 0, len(p.Players)*2)

	switch p.Phase.Kind {
	case AwaitingProposal:
		actions = p.awaitingProposalActions(actions)
	case AwaitingProposalResponse:
		actions = p.awaitingProposalResponseActions(actions)
	case AwaitingProposalBlockResponse:
		actions = p.awaitingProposalBlockResponseActions(actions)
	case AwaitingChallengedBlockResponse:
		actions = p.awaitingChallengedResponseActions(actions, p.PriorityPlayer)
	case AwaitingChallengedProposalResponse:
		actions = p.awaitingChallengedResponseActions(actions, p.CurrentPlayer)
	case AwaitingLoseInfluence:
		for _, idx := range p.Players[p.Phase.Loser].activeCardIndexes() {
			actions = append(actions, Action{Kind: Lose, Player: p.Phase.Loser, CardIdx: idx})
		}
	case ResolveProposal:
		actions = append(actions, Action{Kind: Resolve, Player: p.CurrentPlayer})
	}

	return actions
}

func (p Position) awaitingProposalActions(actions []Action) []Action {
	current := p.CurrentPlayer
	money := p.Players[current].Money

	if money >= 10 {
		// Forced coup at $10+: no other action is legal.
		for _, opp := range p.otherPlayers(current) {
			actions = append(actions, Action{Kind: Coup, Player: current, Target: opp})
		}
		return actions
	}

	actions = append(actions, Action{Kind: Income, Player: current})
	actions = append(actions, Action{Kind: Propose, Player: current, Inner: ForeignAid})
	actions = append(actions, Action{Kind: Propose, Player: current, Inner: Tax})

	for _, idx := range p.Players[current].activeCardIndexes() {
		actions = append(actions, Action{Kind: Propose, Player: current, Inner: Exchange, InnerCardIdx: idx})
	}

	for _, opp := range p.otherPlayers(current) {
		switch {
		case money >= 7:
			actions = append(actions, Action{Kind: Coup, Player: current, Target: opp})
		case money >= 3:
			actions = append(actions, Action{Kind: Propose, Player: current, Inner: Assassinate, InnerTarget: opp})
		}
		if p.Players[opp].Money > 0 {
			actions = append(actions, Action{Kind: Propose, Player: current, Inner: Steal, InnerTarget: opp})
		}
	}

	return actions
}

func (p Position) awaitingProposalResponseActions(actions []Action) []Action {
	prio := p.PriorityPlayer
	if prio == p.CurrentPlayer {
		// Priority has rotated all the way back to the proposer without
		// a response (shouldn't arise before RemainingPasses hits 0, but
		// guards against emitting self-responses).
		return actions
	}

	actions = append(actions, Action{Kind: Pass, Player: prio})

	switch p.Proposal.Kind {
	case ForeignAid:
		actions = append(actions, Action{Kind: Block, Player: prio, Character: Duke})
	case Tax:
		actions = append(actions, Action{Kind: Challenge, Player: prio})
	case Assassinate:
		actions = append(actions, Action{Kind: Challenge, Player: prio})
		if p.Proposal.Target == prio {
			actions = append(actions, Action{Kind: Block, Player: prio, Character: Contessa})
		}
	case Steal:
		actions = append(actions, Action{Kind: Challenge, Player: prio})
		if p.Proposal.Target == prio {
			actions = append(actions, Action{Kind: Block, Player: prio, Character: Ambassador})
			actions = append(actions, Action{Kind: Block, Player: prio, Character: Captain})
		}
	case Exchange:
		actions = append(actions, Action{Kind: Challenge, Player: prio})
	}

	return actions
}

func (p Position) awaitingProposalBlockResponseActions(actions []Action) []Action {
	prio := p.PriorityPlayer
	if prio == p.CurrentPlayer {
		// The proposer never "passes" on a block against itself: it must
		// challenge or concede.
		actions = append(actions, Action{Kind: Challenge, Player: prio})
		actions = append(actions, Action{Kind: Relent, Player: prio})
	} else {
		actions = append(actions, Action{Kind: Challenge, Player: prio})
		actions = append(actions, Action{Kind: Pass, Player: prio})
	}
	return actions
}

// awaitingChallengedResponseActions generates the shared Lose/Reveal
// contract for AwaitingChallengedBlockResponse and
// AwaitingChallengedProposalResponse: the defender (passed as defender)
// may lose any unrevealed card, or reveal-prove if they hold the required
// character unrevealed.
func (p Position) awaitingChallengedResponseActions(actions []Action, defender int) []Action {
	for _, idx := range p.Players[defender].activeCardIndexes() {
		actions = append(actions, Action{Kind: Lose, Player: defender, CardIdx: idx})
	}

	var required Character
	if p.Phase.Kind == AwaitingChallengedBlockResponse {
		required = p.BlockedWith
	} else {
		rc, ok := p.Proposal.Kind.requiredCharacter()
		if !ok {
			return actions
		}
		required = rc
	}

	if idx, ok := p.Players[defender].findActiveCharacter(required); ok {
		actions = append(actions, Action{Kind: Reveal, Player: defender, CardIdx: idx})
	}

	return actions
}
