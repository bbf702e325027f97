// Command bench invokes the rules engine on uniform-random policies and
// reports summary statistics: playout length and legal-action-set size
// distribution. It is a reporting CLI rather than a go test -bench
// target, so results are legible without parsing benchmark output.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"

	"github.com/pterm/pterm"

	"github.com/freeeve/coup/internal/logger"
	"github.com/freeeve/coup/pkg/coup"
)

func main() {
	logger.Init()

	var (
		numGames int
		players  int
		maxTurns int
		seed     int64
	)
	flag.IntVar(&numGames, "n", 1000, "number of random-policy games to play")
	flag.IntVar(&players, "players", 4, "number of players (3-6)")
	flag.IntVar(&maxTurns, "max-turns", 1000, "safety cap on turns per game")
	flag.Int64Var(&seed, "seed", 0, "base RNG seed (0 = time-derived)")
	flag.Parse()

	if seed == 0 {
		seed = rand.Int63()
	}
	rootRng := rand.New(rand.NewSource(seed))

	turnLengths := make([]int, 0, numGames)
	actionSetSizes := make([]int, 0, numGames*10)
	escapes := 0

	for g := 0; g < numGames; g++ {
		gameRng := rand.New(rand.NewSource(rootRng.Int63()))
		pos := coup.New(players, gameRng)

		turns := 0
		for {
			if _, ok := pos.Winner(); ok {
				break
			}
			if turns >= maxTurns {
				escapes++
				break
			}

			actions := pos.Actions()
			actionSetSizes = append(actionSetSizes, len(actions))
			choice := actions[gameRng.Intn(len(actions))]

			next, err := pos.Apply(choice, gameRng)
			if err != nil {
				panic(fmt.Sprintf("bench: legal action rejected: %v", err))
			}
			pos = next
			turns++
		}
		turnLengths = append(turnLengths, turns)
	}

	report(numGames, players, turnLengths, actionSetSizes, escapes)
}

func report(numGames, players int, turnLengths, actionSetSizes []int, escapes int) {
	tMin, tMax, tMean := stats(turnLengths)
	aMin, aMax, aMean := stats(actionSetSizes)

	body := fmt.Sprintf(
		"games: %d (players=%d)\nturns/game: min=%d max=%d mean=%.1f\nactions/decision: min=%d max=%d mean=%.2f\nturn-cap escapes: %d",
		numGames, players, tMin, tMax, tMean, aMin, aMax, aMean, escapes,
	)
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	panel := pterm.Panel{Data: box.WithTitle(pterm.LightCyan("|BENCH RESULT|")).WithTitleTopCenter().Sprintf(body)}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{panel}}).Render()
}

func stats(xs []int) (min, max int, mean float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	sorted := make([]int, len(xs))
	copy(sorted, xs)
	sort.Ints(sorted)
	min, max = sorted[0], sorted[len(sorted)-1]

	sum := 0
	for _, x := range xs {
		sum += x
	}
	mean = float64(sum) / float64(len(xs))
	return min, max, mean
}
