// Command selfplay plays one or more self-play Coup games using the
// pkg/ismcts selector for every seat, optionally writing a CSV summary
// and a DOT trace export. It is a pure harness: it only ever calls
// coup.New, Position.Winner, Position.Apply, and ismcts.Select; no game
// rule or search logic lives here.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/coup/internal/config"
	"github.com/freeeve/coup/internal/logger"
	"github.com/freeeve/coup/internal/trace"
	"github.com/freeeve/coup/pkg/coup"
	"github.com/freeeve/coup/pkg/ismcts"
)

func main() {
	logger.Init()
	cfg := config.Load()

	var (
		numGames    int
		players     int
		det         int
		sims        int
		workers     int
		turnCap     int
		seed        int64
		csvPath     string
		dotPath     string
		maxTurns    int
	)

	flag.IntVar(&numGames, "n", 1, "number of self-play games")
	flag.IntVar(&players, "players", cfg.Players, "number of players (3-6)")
	flag.IntVar(&det, "determinizations", cfg.Determinizations, "ISMCTS determinizations per decision")
	flag.IntVar(&sims, "simulations", cfg.Simulations, "ISMCTS playouts per action per determinization")
	flag.IntVar(&workers, "workers", cfg.Workers, "max concurrent determinization workers (0 = unbounded)")
	flag.IntVar(&turnCap, "turn-cap", cfg.TurnCap, "playout turn cap before a PlayoutEscape is declared")
	flag.Int64Var(&seed, "seed", cfg.Seed, "base RNG seed (0 = time-derived)")
	flag.StringVar(&csvPath, "csv", "", "optional path to append a CSV summary row per game")
	flag.IntVar(&maxTurns, "max-turns", 2000, "safety cap on turns per game before the driver gives up")
	flag.StringVar(&dotPath, "trace", "", "optional path to write a DOT trace of all games played")
	flag.Parse()

	if seed == 0 {
		seed = rand.Int63()
	}
	rootRng := rand.New(rand.NewSource(seed))

	params := ismcts.Params{Determinizations: det, Simulations: sims, Workers: workers, TurnCap: turnCap}

	var graph *trace.Graph
	if dotPath != "" {
		graph = trace.NewGraph()
	}

	var csvWriter *csv.Writer
	if csvPath != "" {
		f, err := os.OpenFile(csvPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("path", csvPath).Msg("selfplay: cannot open csv output")
		}
		defer f.Close()
		csvWriter = csv.NewWriter(f)
		defer csvWriter.Flush()
	}

	for g := 0; g < numGames; g++ {
		gameID := uuid.New().String()
		gameSeed := rootRng.Int63()
		gameRng := rand.New(rand.NewSource(gameSeed))

		pos := coup.New(players, gameRng)
		turns := 0
		for {
			if winner, ok := pos.Winner(); ok {
				reportGame(gameID, winner, turns, players)
				if csvWriter != nil {
					writeCSVRow(csvWriter, gameID, winner, turns, players, gameSeed)
				}
				break
			}
			if turns >= maxTurns {
				log.Warn().Str("game", gameID).Int("turns", turns).Msg("selfplay: game exceeded max-turns without a winner")
				break
			}

			action := ismcts.Select(pos, gameRng, params)
			next, err := pos.Apply(action, gameRng)
			if err != nil {
				log.Fatal().Err(err).Str("game", gameID).Msg("selfplay: ISMCTS selected an illegal action")
			}
			if graph != nil {
				graph.Record(pos, action, next)
			}
			pos = next
			turns++
		}
	}

	if graph != nil {
		if err := os.WriteFile(dotPath, []byte(graph.WriteDOT()), 0644); err != nil {
			log.Error().Err(err).Str("path", dotPath).Msg("selfplay: failed to write trace")
		} else {
			log.Info().Str("path", dotPath).Int("nodes", graph.NodeCount()).Int("edges", graph.EdgeCount()).Msg("selfplay: trace written")
		}
	}
}

func reportGame(gameID string, winner, turns, players int) {
	box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := fmt.Sprintf("game %s\nplayers: %d\nturns: %d\nwinner: player %d", gameID, players, turns, winner)
	panel := pterm.Panel{Data: box.WithTitle(pterm.LightGreen("|SELFPLAY RESULT|")).WithTitleTopCenter().Sprintf(body)}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{panel}}).Render()
}

func writeCSVRow(w *csv.Writer, gameID string, winner, turns, players int, seed int64) {
	_ = w.Write([]string{
		gameID,
		strconv.Itoa(players),
		strconv.Itoa(turns),
		strconv.Itoa(winner),
		strconv.FormatInt(seed, 10),
	})
}
