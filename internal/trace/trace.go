// Package trace records successive Coup positions and the actions chosen
// between them into an append-only, in-memory multigraph, for offline
// inspection of a played-out game or search tree. Nothing here
// participates in rules or decision logic; Graph only ever observes
// Positions and Actions already produced by pkg/coup and pkg/ismcts.
package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/freeeve/coup/pkg/coup"
)

// Node is one recorded Position, keyed by a content hash over every
// field, deck order included: a reshuffle produces a distinct node even
// when every other observable field is unchanged, which is the
// de-duplication behavior this recorder wants.
type Node struct {
	Key   string
	Label string
}

// Edge is one recorded transition: a player chose Action at From and
// landed on To. Multiple edges may share From and To (a multigraph), and
// the same Action may be recorded more than once if it recurs.
type Edge struct {
	From, To string
	Action   coup.Action
}

// Graph is an append-only multigraph over Positions, de-duplicated by
// Node.Key. It is not safe for concurrent use; the ISMCTS selector never
// touches it; only a single-threaded driver (cmd/selfplay) records into
// it between successive Apply calls.
type Graph struct {
	nodes map[string]Node
	edges []Edge
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]Node)}
}

// Record adds (or reuses) nodes for from and to, keyed by their content
// hash, and appends an edge labeled by action between them.
func (g *Graph) Record(from coup.Position, action coup.Action, to coup.Position) {
	fromKey := g.addNode(from)
	toKey := g.addNode(to)
	g.edges = append(g.edges, Edge{From: fromKey, To: toKey, Action: action})
}

func (g *Graph) addNode(p coup.Position) string {
	key := positionKey(p)
	if _, ok := g.nodes[key]; !ok {
		g.nodes[key] = Node{Key: key, Label: positionLabel(p)}
	}
	return key
}

// NodeCount returns the number of distinct recorded positions.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of recorded transitions, including
// repeats between the same pair of nodes.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// positionKey hashes every field of p, including deck order, so that two
// positions that are only nominally equal (same phase/money/cards but
// reshuffled decks) are treated as distinct nodes.
func positionKey(p coup.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn=%d cur=%d prio=%d phase=%+v proposal=%+v blocked=%v/%v\n",
		p.Turn, p.CurrentPlayer, p.PriorityPlayer, p.Phase, p.Proposal, p.HasBlockedWith, p.BlockedWith)
	for _, c := range p.Deck {
		fmt.Fprintf(&b, "d%d ", c)
	}
	b.WriteByte('\n')
	for i, pl := range p.Players {
		fmt.Fprintf(&b, "p%d money=%d hand=%+v\n", i, pl.Money, pl.Influence)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// positionLabel is a short human-readable summary used as a DOT node
// label; it is not part of the de-duplication key.
func positionLabel(p coup.Position) string {
	return fmt.Sprintf("turn %d\\nplayer %d\\nphase %v", p.Turn, p.CurrentPlayer, p.Phase.Kind)
}

// WriteDOT renders the graph in a minimal Graphviz-dot-compatible text
// format. Nodes and edges are emitted in a stable, sorted order so the
// output is diffable across runs. The format is small enough to
// hand-roll on strings.Builder rather than reaching for a graph/dot
// dependency (see DESIGN.md).
func (g *Graph) WriteDOT() string {
	var b strings.Builder
	b.WriteString("digraph coup {\n")

	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %q [label=%q];\n", k, g.nodes[k].Label)
	}

	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	for _, e := range edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.From, e.To, e.Action.String())
	}

	b.WriteString("}\n")
	return b.String()
}
