package coup

// PhaseKind discriminates the node of the game's finite-state machine.
type PhaseKind int

const (
	// AwaitingProposal: the current player must act.
	AwaitingProposal PhaseKind = iota
	// AwaitingProposalResponse: opponents may pass, block, or challenge.
	AwaitingProposalResponse
	// AwaitingProposalBlockResponse: non-blocker opponents may pass or
	// challenge, the proposer may challenge or relent; the blocker is
	// skipped.
	AwaitingProposalBlockResponse
	// AwaitingChallengedBlockResponse: the blocker must reveal-proof or
	// lose.
	AwaitingChallengedBlockResponse
	// AwaitingChallengedProposalResponse: the proposer must reveal-proof
	// or lose.
	AwaitingChallengedProposalResponse
	// AwaitingLoseInfluence: the loser selects a card to reveal.
	AwaitingLoseInfluence
	// ResolveProposal: the current player must emit a Resolve to apply
	// the pending effect.
	ResolveProposal
)

// Phase is a flat, comparable tagged union over the state-machine node a
// Position occupies. Only the fields relevant to Kind are meaningful; the
// rest are zero. One struct, a discriminant, and a handful of payload
// fields is used here rather than a recursive/boxed enum, keeping Phase
// usable as a plain comparable value. Position itself holds slices and is
// not comparable with ==.
type Phase struct {
	Kind PhaseKind

	// RemainingPasses is meaningful for AwaitingProposalResponse: the
	// count of alive opponents who have yet to pass, block, or challenge.
	RemainingPasses int

	// Blocker is meaningful for AwaitingProposalBlockResponse and
	// AwaitingChallengedBlockResponse.
	Blocker int

	// Challenger is meaningful for AwaitingChallengedBlockResponse and
	// AwaitingChallengedProposalResponse.
	Challenger int

	// Loser and EndTurn are meaningful for AwaitingLoseInfluence.
	Loser   int
	EndTurn bool
}
