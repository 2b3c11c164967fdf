// Package main provides a CLI that plays simulated Zanzibar matches,
// records them to the local history database and prints the standings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/rodaine/table"

	"github.com/louisbranch/zanzibar/internal/achievements"
	"github.com/louisbranch/zanzibar/internal/event"
	"github.com/louisbranch/zanzibar/internal/platform/config"
	platformotel "github.com/louisbranch/zanzibar/internal/platform/otel"
	"github.com/louisbranch/zanzibar/internal/random"
	"github.com/louisbranch/zanzibar/internal/replay"
	"github.com/louisbranch/zanzibar/internal/stats"
	"github.com/louisbranch/zanzibar/internal/storage/sqlite"
	"github.com/louisbranch/zanzibar/internal/zanzibar/domain"
	"github.com/louisbranch/zanzibar/internal/zanzibar/service"
)

type envConfig struct {
	DBPath    string `env:"ZANZIBAR_DB_PATH" envDefault:"zanzibar.db"`
	ReplayDir string `env:"ZANZIBAR_REPLAY_DIR" envDefault:"replays"`
}

type popupNotifier struct{}

func (popupNotifier) Notify(a achievements.Achievement) {
	fmt.Printf("  ** Achievement unlocked: %s — %s\n", a.Title, a.Description)
}

func main() {
	var cfg envConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("load config: %v", err)
	}

	var (
		playersFlag = flag.String("players", "alice,bob,carol", "comma-separated player names")
		chips       = flag.Int("chips", service.DefaultStartingChips, "starting penalty chips per player")
		seed        = flag.Int64("seed", 0, "random seed (0 = crypto-random)")
		maxRounds   = flag.Int("max-rounds", 500, "round cap before the match is abandoned")
		odds        = flag.Bool("odds", false, "print the hand probability table and exit")
		standings   = flag.Bool("standings", false, "print all-time player standings and exit")
		noStore     = flag.Bool("no-store", false, "skip the history database")
		noReplay    = flag.Bool("no-replay", false, "skip writing the replay journal")
	)
	flag.Parse()

	ctx := context.Background()

	if *odds {
		printOdds()
		return
	}

	shutdown, err := platformotel.Setup(ctx, "zanzibar")
	if err != nil {
		config.Exitf("otel setup: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	if *standings {
		printStandings(ctx, cfg.DBPath)
		return
	}

	names := strings.Split(*playersFlag, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	if *seed == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			config.Exitf("generate seed: %v", err)
		}
		*seed = generated
	}
	log.Printf("playing with seed %d", *seed)

	bus := event.NewBus()
	replayRecorder := replay.NewRecorder()
	bus.Subscribe(replayRecorder)

	if !*noStore {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			config.Exitf("open history store: %v", err)
		}
		defer store.Close()
		bus.Subscribe(stats.NewRecorder(store))
	}

	game, err := service.NewGame(names, service.Options{
		StartingChips: *chips,
		Bus:           bus,
		Achievements:  achievements.NewManager(popupNotifier{}),
		Rng:           rand.New(rand.NewSource(*seed)),
	})
	if err != nil {
		config.Exitf("new game: %v", err)
	}

	fmt.Printf("Match %s: %s, %d chips each\n\n", game.MatchID(), strings.Join(names, " vs "), *chips)

	for round := 1; round <= *maxRounds && !game.Finished(); round++ {
		report, err := game.PlayRound(ctx)
		if err != nil {
			config.Exitf("round %d: %v", round, err)
		}
		printRound(report)
	}

	if !game.Finished() {
		fmt.Printf("\nNo winner after %d rounds; match abandoned.\n", *maxRounds)
	} else {
		fmt.Printf("\n%s sheds their last chip and wins after %d rounds!\n\n", game.Winner(), game.Round())
	}
	printTable(game)

	if !*noReplay {
		path, err := replayRecorder.Save(cfg.ReplayDir)
		if err != nil {
			log.Printf("save replay: %v", err)
		} else {
			log.Printf("replay written to %s", path)
		}
	}
}

func printRound(report service.RoundReport) {
	outcome := report.Outcome
	fmt.Printf("Round %d (roll limit %d):\n", report.Round, outcome.RollLimit)
	for _, result := range outcome.Results {
		fmt.Printf("  %-10s %v  %s\n", result.Name, []int(result.Roll.Sorted()), result.Score.Label)
	}
	fmt.Printf("  -> %s wins, %s collects %d from each player\n", outcome.Winner, outcome.Loser, outcome.Payout)
}

func printTable(game *service.Game) {
	tbl := table.New("Seat", "Player", "Chips", "Energy", "Streak")
	tbl.WithWriter(os.Stdout)
	for seat, player := range game.Players() {
		tbl.AddRow(seat+1, player.Name, player.Chips, player.Energy, player.WinStreak)
	}
	tbl.Print()
}

func printOdds() {
	odds, err := domain.HandProbability()
	if err != nil {
		config.Exitf("hand probability: %v", err)
	}
	tbl := table.New("Category", "Outcomes", "Probability")
	tbl.WithWriter(os.Stdout)
	for _, entry := range odds.CategoryCounts {
		tbl.AddRow(entry.Category, entry.Count,
			fmt.Sprintf("%.2f%%", 100*float64(entry.Count)/float64(odds.TotalOutcomes)))
	}
	tbl.Print()
}

func printStandings(ctx context.Context, dbPath string) {
	store, err := sqlite.Open(dbPath)
	if err != nil {
		config.Exitf("open history store: %v", err)
	}
	defer store.Close()

	all, err := store.ListPlayerStats(ctx)
	if err != nil {
		config.Exitf("list standings: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	tbl := table.New("Player", "Matches", "Won", "Rounds", "Round Wins", "Best Roll", "Favorite Hand")
	tbl.WithWriter(os.Stdout)
	for _, player := range all {
		tbl.AddRow(player.Name, player.MatchesPlayed, player.MatchesWon, player.RoundsPlayed,
			player.RoundsWon, player.HighestRollTotal, player.FavoriteHand)
	}
	tbl.Print()
}
