package ismcts

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/coup/pkg/coup"
)

// Select returns the action from pos.Actions() that maximizes the acting
// player's expected outcome relative to its opponents', estimated by
// searching params.Determinizations independent hidden-information samples,
// each scored by params.Simulations uniform-random playouts per action. It
// never returns an action outside pos.Actions(). rng is the only source of
// nondeterminism read directly by the caller's goroutine; every worker
// derives its own independent sub-stream from it and never touches a shared
// global source.
func Select(pos coup.Position, rng *rand.Rand, params Params) coup.Action {
	actions := pos.Actions()
	if len(actions) == 0 {
		panic("ismcts: Select called on a position with no legal actions")
	}
	if len(actions) == 1 {
		return actions[0]
	}

	determinizations := params.Determinizations
	if determinizations <= 0 {
		determinizations = 1
	}
	simulations := params.Simulations
	if simulations <= 0 {
		simulations = 1
	}
	workers := params.Workers
	if workers <= 0 || workers > determinizations {
		workers = determinizations
	}
	turnCap := params.turnCap()

	// Every action in the set belongs to the player who must act now (the
	// priority holder or defender during a response window, not always
	// CurrentPlayer). Determinizing from that player's view keeps their own
	// hand fixed, so every action in the set stays legal in each sample.
	perspective := actions[0].Player
	numPlayers := len(pos.Players)

	// Each worker seeds an independent sub-stream from rng.Int63() plus its
	// own index, so results are reproducible for a fixed rng and
	// determinizations count regardless of goroutine scheduling order.
	seeds := make([]int64, determinizations)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	results := make([][][]float64, determinizations)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for w := 0; w < determinizations; w++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(worker int) {
			defer wg.Done()
			defer func() { <-sem }()

			workerRng := rand.New(rand.NewSource(seeds[worker] + int64(worker)))
			determinized := pos.Determine(workerRng, perspective)
			results[worker] = scoreActions(determinized, actions, simulations, turnCap, workerRng)
		}(w)
	}
	wg.Wait()

	avg := make([][]float64, len(actions))
	for i := range avg {
		avg[i] = make([]float64, numPlayers)
		for _, r := range results {
			for p := 0; p < numPlayers; p++ {
				avg[i][p] += r[i][p]
			}
		}
		for p := 0; p < numPlayers; p++ {
			avg[i][p] /= float64(determinizations)
		}
	}

	best := 0
	bestValue := actionValue(avg[0], perspective, numPlayers)
	for i := 1; i < len(actions); i++ {
		v := actionValue(avg[i], perspective, numPlayers)
		if v > bestValue {
			bestValue = v
			best = i
		}
	}
	return actions[best]
}

// actionValue is the acting player's score minus the mean of its opponents'.
func actionValue(scores []float64, perspective, numPlayers int) float64 {
	if numPlayers <= 1 {
		return scores[perspective]
	}
	var oppSum float64
	for p, s := range scores {
		if p != perspective {
			oppSum += s
		}
	}
	return scores[perspective] - oppSum/float64(numPlayers-1)
}

// scoreActions runs simulations playouts per action from determinized,
// tallies raw per-player win counts, and returns, for each action, that
// tally normalized by its own largest entry — so each action's vector
// has a 1.0 on whichever player won it most often, not a win rate over
// simulations. This keeps the scale comparable across actions regardless
// of how concentrated or spread out their win counts are.
func scoreActions(determinized coup.Position, actions []coup.Action, simulations, turnCap int, rng *rand.Rand) [][]float64 {
	numPlayers := len(determinized.Players)
	scores := make([][]float64, len(actions))
	for i, action := range actions {
		scores[i] = make([]float64, numPlayers)
		for s := 0; s < simulations; s++ {
			next, err := determinized.Apply(action, rng)
			if err != nil {
				panic(err)
			}
			addPlayoutResult(scores[i], playout(next, turnCap, rng))
		}

		max := 0.0
		for _, v := range scores[i] {
			if v > max {
				max = v
			}
		}
		if max > 0 {
			for p := range scores[i] {
				scores[i][p] /= max
			}
		}
	}
	return scores
}

func addPlayoutResult(dst []float64, outcome []float64) {
	for i, v := range outcome {
		dst[i] += v
	}
}

// defaultEscapeWinner is the fixed winner declared for a playout that
// exceeds turnCap without a natural winner, so a pathological playout
// still contributes a well-defined score instead of a partial or empty
// vector.
const defaultEscapeWinner = 0

// playout runs uniform-random actions from pos until a winner emerges or
// turnCap turns elapse, and returns a per-player score vector: 1.0 on the
// winner's slot, 0 elsewhere. A playout that hits the turn cap logs an
// escape and scores as a win for defaultEscapeWinner, an arbitrary fixed
// default.
func playout(pos coup.Position, turnCap int, rng *rand.Rand) []float64 {
	numPlayers := len(pos.Players)
	startTurn := pos.Turn

	for {
		if winner, ok := pos.Winner(); ok {
			outcome := make([]float64, numPlayers)
			outcome[winner] = 1
			return outcome
		}
		if pos.Turn-startTurn >= turnCap {
			break
		}

		actions := pos.Actions()
		choice := actions[rng.Intn(len(actions))]
		next, err := pos.Apply(choice, rng)
		if err != nil {
			panic(err)
		}
		pos = next
	}

	log.Warn().Int("turn_cap", turnCap).Msg("ismcts: playout escaped turn cap without a winner")

	outcome := make([]float64, numPlayers)
	outcome[defaultEscapeWinner] = 1
	return outcome
}
