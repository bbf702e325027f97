package ismcts

import (
	"math/rand"
	"testing"

	"github.com/freeeve/coup/pkg/coup"
)

func containsAction(actions []coup.Action, a coup.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func TestSelectReturnsLegalAction(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		pos := coup.New(4, rng)

		for turns := 0; turns < 10; turns++ {
			if _, ok := pos.Winner(); ok {
				break
			}
			chosen := Select(pos, rng, Params{Determinizations: 2, Simulations: 2, Workers: 2, TurnCap: 30})
			if !containsAction(pos.Actions(), chosen) {
				t.Fatalf("seed %d turn %d: Select returned %s, not a member of Actions()", seed, turns, chosen)
			}
			next, err := pos.Apply(chosen, rng)
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			pos = next
		}
	}
}

func TestSelectDeterministicForSingleWorker(t *testing.T) {
	rng1 := rand.New(rand.NewSource(99))
	pos := coup.New(3, rng1)

	params := Params{Determinizations: 1, Simulations: 4, Workers: 1, TurnCap: 20}

	rngA := rand.New(rand.NewSource(100))
	a := Select(pos, rngA, params)

	rngB := rand.New(rand.NewSource(100))
	b := Select(pos, rngB, params)

	if a != b {
		t.Fatalf("Select was not deterministic for D=1, workers=1: %s vs %s", a, b)
	}
}

func TestSelectSingleActionShortCircuits(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pos := coup.New(3, rng)
	pos.Players[pos.CurrentPlayer].Money = 10
	pos.Players[(pos.CurrentPlayer+1)%3].Influence[0].Revealed = true
	pos.Players[(pos.CurrentPlayer+1)%3].Influence[1].Revealed = true
	// Force-coup phase with a single alive opponent: exactly one legal
	// action.
	actions := pos.Actions()
	if len(actions) == 0 {
		t.Fatal("expected at least one action")
	}
	chosen := Select(pos, rng, Params{Determinizations: 1, Simulations: 1, Workers: 1})
	if !containsAction(actions, chosen) {
		t.Fatalf("Select returned %s, not legal", chosen)
	}
}
