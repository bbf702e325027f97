package trace

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/freeeve/coup/pkg/coup"
)

func TestRecordDeduplicatesNodesByContentKey(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pos := coup.New(3, rng)

	g := NewGraph()
	g.Record(pos, pos.Actions()[0], pos)
	g.Record(pos, pos.Actions()[0], pos)

	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 distinct node for the same position recorded twice, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("expected 2 edges (a multigraph), got %d", g.EdgeCount())
	}
}

func TestRecordDistinguishesReshuffledDecks(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pos := coup.New(4, rng)

	// Swap the top card with one of a different character so the deck
	// order genuinely changes.
	reshuffled := pos.Clone()
	swapped := false
	for i := 1; i < len(reshuffled.Deck); i++ {
		if reshuffled.Deck[i] != reshuffled.Deck[0] {
			reshuffled.Deck[0], reshuffled.Deck[i] = reshuffled.Deck[i], reshuffled.Deck[0]
			swapped = true
			break
		}
	}
	if !swapped {
		t.Fatal("deck unexpectedly uniform, cannot produce a reshuffle")
	}

	g := NewGraph()
	g.Record(pos, pos.Actions()[0], pos)
	g.Record(reshuffled, reshuffled.Actions()[0], reshuffled)

	if g.NodeCount() != 2 {
		t.Fatalf("expected reshuffled deck to be a distinct node, got %d nodes", g.NodeCount())
	}
}

func TestWriteDOTIsWellFormed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pos := coup.New(3, rng)
	action := pos.Actions()[0]
	next, err := pos.Apply(action, rng)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	g := NewGraph()
	g.Record(pos, action, next)

	dot := g.WriteDOT()
	if !strings.HasPrefix(dot, "digraph coup {") {
		t.Fatalf("expected dot output to start with digraph header, got: %q", dot)
	}
	if !strings.Contains(dot, "->") {
		t.Fatalf("expected at least one edge in dot output")
	}
}
