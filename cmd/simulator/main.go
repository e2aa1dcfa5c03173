package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "full":
		fullCmd(apiURL, args)
	case "draft":
		draftCmd(apiURL, args)
	case "status":
		statusCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Draft Simulator - Development tool for exercising the league API

USAGE:
  simulator <command> [options]

COMMANDS:
  full      Create a league, initialize teams, load prospects and run the draft
  draft     Auto-draft the remaining picks of an existing league
  status    Print the draft board of a league
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # 8 teams, 3 rounds, generated prospects
  simulator full --teams=8 --rounds=3

  # Build the league from a scenario file and trade picks along the way
  simulator full --scenario=scenarios/mock.yaml --trades=0.2

  # Set up the league but leave the draft for the UI
  simulator full --picks=0

  # Finish an existing draft
  simulator draft --league=<id>`)
}

func fullCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("full", flag.ExitOnError)
	scenarioPath := fs.String("scenario", "", "YAML scenario file (default: generated league)")
	teams := fs.Int("teams", 8, "Number of teams when no scenario is given")
	rounds := fs.Int("rounds", 3, "Number of rounds when no scenario is given")
	picks := fs.Int("picks", -1, "Number of picks to make (-1 drafts everything)")
	tradeRate := fs.Float64("trades", 0, "Chance (0-1) of a random pick trade before each pick")
	seed := fs.Int64("seed", 1, "Random seed")
	fs.Parse(args)

	var (
		sc  *Scenario
		err error
	)
	if *scenarioPath != "" {
		sc, err = LoadScenario(*scenarioPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if *teams < 1 || *rounds < 1 {
			fmt.Println("Error: --teams and --rounds must be at least 1")
			os.Exit(1)
		}
		sc = DefaultScenario(*teams, *rounds)
	}

	client := NewAPIClient(apiURL)
	rng := rand.New(rand.NewSource(*seed))

	fmt.Println("=== Draft Simulator: Full Flow ===")
	fmt.Println()

	fmt.Print("Creating league... ")
	league, err := client.CreateLeague(sc.Name, sc.Rounds)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (%s)\n", league.ID)

	fmt.Printf("Initializing %d teams... ", len(sc.Teams))
	league, err = client.InitializeLeague(league.ID, sc.Teams)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (%d picks)\n", len(league.DraftPicks))

	fmt.Printf("Loading %d prospects... ", len(sc.Prospects))
	created, err := client.CreateProspects(league.ID, sc.Prospects)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (%d created)\n", created)

	if *picks != 0 {
		fmt.Println()
		runDraft(client, league.ID, *picks, *tradeRate, rng)
	}

	fmt.Println()
	printBoard(client, league.ID)
}

func draftCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("draft", flag.ExitOnError)
	leagueID := fs.String("league", "", "League ID (required)")
	picks := fs.Int("picks", -1, "Number of picks to make (-1 drafts everything)")
	tradeRate := fs.Float64("trades", 0, "Chance (0-1) of a random pick trade before each pick")
	seed := fs.Int64("seed", 1, "Random seed")
	fs.Parse(args)

	if *leagueID == "" {
		fmt.Println("Error: --league is required")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)
	runDraft(client, *leagueID, *picks, *tradeRate, rand.New(rand.NewSource(*seed)))
}

func statusCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	leagueID := fs.String("league", "", "League ID (required)")
	fs.Parse(args)

	if *leagueID == "" {
		fmt.Println("Error: --league is required")
		os.Exit(1)
	}

	printBoard(NewAPIClient(apiURL), *leagueID)
}

// runDraft makes picks until limit is reached or the draft ends. The team on
// the clock always takes the first available prospect.
func runDraft(client *APIClient, leagueID string, limit int, tradeRate float64, rng *rand.Rand) {
	for made := 0; limit < 0 || made < limit; made++ {
		if tradeRate > 0 && rng.Float64() < tradeRate {
			maybeTrade(client, leagueID, rng)
		}

		pick, err := client.CurrentPick(leagueID)
		if err != nil {
			fmt.Printf("Failed to load current pick: %v\n", err)
			os.Exit(1)
		}
		if pick == nil {
			fmt.Println("Draft complete.")
			return
		}

		available, err := client.AvailableProspects(leagueID)
		if err != nil {
			fmt.Printf("Failed to load prospects: %v\n", err)
			os.Exit(1)
		}
		if len(available) == 0 {
			fmt.Println("No prospects left, stopping.")
			return
		}

		result, err := client.ExecuteDraft(leagueID, pick.CurrentTeamID, available[0].ID)
		if err != nil {
			fmt.Printf("  Pick %d FAILED: %v\n", pick.PickNumber, err)
			os.Exit(1)
		}
		fmt.Printf("  [R%d.%02d] #%d %s (%s)\n",
			pick.RoundNumber, pick.PickInRound, pick.PickNumber,
			result.Prospect.Name, result.Prospect.Position)

		if result.League.DraftCompleted {
			fmt.Println("Draft complete.")
			return
		}
	}
}

// maybeTrade moves one random unused pick between two random teams.
func maybeTrade(client *APIClient, leagueID string, rng *rand.Rand) {
	league, err := client.GetLeague(leagueID)
	if err != nil || len(league.Teams) < 2 {
		return
	}

	var open []DraftPick
	for _, p := range league.DraftPicks {
		if !p.IsUsed {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return
	}

	pick := open[rng.Intn(len(open))]
	to := league.Teams[rng.Intn(len(league.Teams))]
	if to.ID == pick.CurrentTeamID {
		return
	}

	if err := client.ExecuteTrade(leagueID, pick.CurrentTeamID, to.ID, []string{pick.ID}); err != nil {
		fmt.Printf("  Trade of pick #%d FAILED: %v\n", pick.PickNumber, err)
		return
	}
	fmt.Printf("  Trade: pick #%d -> %s\n", pick.PickNumber, to.Name)
}

func printBoard(client *APIClient, leagueID string) {
	league, err := client.GetLeague(leagueID)
	if err != nil {
		fmt.Printf("Failed to load league: %v\n", err)
		os.Exit(1)
	}

	teamNames := make(map[string]string, len(league.Teams))
	for _, t := range league.Teams {
		teamNames[t.ID] = t.Name
	}

	status := "not started"
	switch {
	case league.DraftCompleted:
		status = "completed"
	case league.DraftStarted:
		status = fmt.Sprintf("on pick %d", league.CurrentPickNumber)
	}

	fmt.Println("=========================================")
	fmt.Printf("  %s (%s)\n", league.Name, status)
	fmt.Println("=========================================")
	for _, p := range league.DraftPicks {
		owner := teamNames[p.CurrentTeamID]
		if p.OriginalTeamID != p.CurrentTeamID {
			owner += " (via " + teamNames[p.OriginalTeamID] + ")"
		}
		mark := " "
		if p.IsUsed {
			mark = "x"
		}
		fmt.Printf("  [%s] R%d.%02d  #%-3d %s\n", mark, p.RoundNumber, p.PickInRound, p.PickNumber, owner)
	}
}
