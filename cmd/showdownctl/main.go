package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/decred/slog"

	"github.com/RobGibbens/CardGames-sub006/pkg/audit"
	"github.com/RobGibbens/CardGames-sub006/pkg/poker"
)

type CLI struct {
	DebugLevel string `default:"info" help:"Logging level: trace, debug, info, warn, error"`

	Eval   EvalCmd   `cmd:"" help:"Evaluate a hand (high, low, wild or hi/lo)"`
	Settle SettleCmd `cmd:"" help:"Replay a showdown settlement from a JSON spec"`
	Audit  AuditCmd  `cmd:"" help:"Dump the showdown audit log for a game"`
}

func newLogger(level string) slog.Logger {
	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("SHOWDOWN")
	if lvl, ok := slog.LevelFromString(level); ok {
		log.SetLevel(lvl)
	}
	return log
}

type EvalCmd struct {
	Cards         string `required:"" help:"Cards to evaluate, e.g. 'Ah Kh Qh Jh Th'"`
	Wild          string `help:"Cards within the hand that are wild, e.g. '2c 2d'"`
	Low           bool   `help:"Evaluate as an ace-to-five low hand"`
	EightOrBetter bool   `help:"Apply the 8-or-better low qualifier"`
	HiLo          bool   `help:"Evaluate both halves for a hi/lo split"`
}

func (cmd *EvalCmd) Run(cli *CLI) error {
	cards, err := poker.ParseCards(cmd.Cards)
	if err != nil {
		return err
	}
	var wilds []poker.Card
	if cmd.Wild != "" {
		if wilds, err = poker.ParseCards(cmd.Wild); err != nil {
			return err
		}
	}

	if cmd.HiLo {
		res := poker.EvaluateHiLo(cards, wilds)
		fmt.Printf("high: %s (strength %d)\n", res.High.HandDescription, res.High.Strength)
		fmt.Printf("low:  %s (strength %d)\n", res.Low.HandDescription, res.Low.Strength)
		return nil
	}

	mode := poker.RankHigh
	if cmd.Low {
		mode = poker.RankLowAceToFive
		if cmd.EightOrBetter {
			mode = poker.RankLowEightOrBetter
		}
	}

	hv := poker.EvaluateBestHand(cards, wilds, mode)
	fmt.Printf("%s (strength %d)\n", hv.HandDescription, hv.Strength)
	if len(hv.BestHand) > 0 {
		fmt.Print("plays as:")
		for _, c := range hv.BestHand {
			fmt.Printf(" %s", c)
		}
		fmt.Println()
	}
	return nil
}

// settlementSpec is the JSON input for the settle subcommand.
type settlementSpec struct {
	GameID     string `json:"game_id"`
	HandNumber int    `json:"hand_number"`
	Dealer     int    `json:"dealer"`
	Community  string `json:"community"`
	HiLo       bool   `json:"hi_lo"`
	Players    []struct {
		Name   string `json:"name"`
		Cards  string `json:"cards"`
		Wild   string `json:"wild"`
		Folded bool   `json:"folded"`
		AllIn  bool   `json:"all_in"`
	} `json:"players"`
	Pots []struct {
		Amount   int64    `json:"amount"`
		Eligible []string `json:"eligible"`
	} `json:"pots"`
}

type SettleCmd struct {
	Spec    string `arg:"" required:"" help:"Path to the settlement spec JSON file"`
	AuditDB string `help:"If set, record showdown audit entries to this SQLite database"`
}

func (cmd *SettleCmd) Run(cli *CLI) error {
	log := newLogger(cli.DebugLevel)

	raw, err := os.ReadFile(cmd.Spec)
	if err != nil {
		return err
	}
	var spec settlementSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("invalid settlement spec: %v", err)
	}

	var store audit.Store
	if cmd.AuditDB != "" {
		sqlStore, err := audit.NewSQLiteStore(cmd.AuditDB, nil, log)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	community, err := poker.ParseCards(spec.Community)
	if err != nil {
		return err
	}

	cfg := poker.ShowdownConfig{
		GameID:         spec.GameID,
		HandNumber:     spec.HandNumber,
		DealerPosition: spec.Dealer,
		CommunityCards: community,
		// Replay shows every surviving hand; order enforcement is pointless
		// after the fact.
		Rules: poker.RulesConfig{ShowOrder: poker.ShowOrderSimultaneous, AllowMuck: false},
		Log:   log,
		Audit: store,
	}
	for i, p := range spec.Players {
		cards, err := poker.ParseCards(p.Cards)
		if err != nil {
			return fmt.Errorf("player %s: %v", p.Name, err)
		}
		var wilds []poker.Card
		if p.Wild != "" {
			if wilds, err = poker.ParseCards(p.Wild); err != nil {
				return fmt.Errorf("player %s: %v", p.Name, err)
			}
		}
		cfg.Players = append(cfg.Players, poker.PlayerSeat{
			Name:      p.Name,
			Seat:      i,
			HoleCards: cards,
			WildCards: wilds,
			HasFolded: p.Folded,
			IsAllIn:   p.AllIn,
		})
	}

	ctx, err := poker.NewShowdown(cfg)
	if err != nil {
		return err
	}

	if spec.HiLo {
		err = ctx.EvaluateHandsHiLo()
	} else {
		err = ctx.EvaluateHands(poker.RankHigh)
	}
	if err != nil {
		return err
	}

	for _, p := range ctx.Players() {
		if p.HasFolded {
			continue
		}
		if res := ctx.ProcessReveal(p.Name, nil); !res.OK {
			return fmt.Errorf("reveal %s: %s", p.Name, res.Reason)
		}
	}

	pots := make([]poker.PotInfo, 0, len(spec.Pots))
	for i, p := range spec.Pots {
		pots = append(pots, poker.PotInfo{
			PotIndex:        i,
			Amount:          p.Amount,
			EligiblePlayers: p.Eligible,
			IsMainPot:       i == 0,
		})
	}

	var results []poker.WinnerDetermination
	if spec.HiLo {
		results, err = ctx.DetermineWinnersWithPotsHiLo(pots)
	} else {
		results, err = ctx.DetermineWinnersWithPots(pots)
	}
	if err != nil {
		return err
	}

	ann := ctx.BuildWinnerAnnouncement(results)
	fmt.Println(ann.Text)
	return nil
}

type AuditCmd struct {
	DB   string `required:"" help:"Path to the audit SQLite database"`
	Game string `required:"" help:"Game ID to dump"`
	Hand int    `default:"-1" help:"Restrict to one hand number"`
}

func (cmd *AuditCmd) Run(cli *CLI) error {
	log := newLogger(cli.DebugLevel)

	store, err := audit.NewSQLiteStore(cmd.DB, nil, log)
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []audit.Entry
	if cmd.Hand >= 0 {
		entries = store.GetShowdownAudit(cmd.Game, cmd.Hand)
	} else {
		entries = store.GetGameShowdownAudits(cmd.Game)
	}

	for _, e := range entries {
		fmt.Printf("%s hand=%d %-10s %-12s %s\n",
			e.Timestamp.Format("15:04:05"), e.HandNumber, e.Type, e.Player, e.Detail)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("showdownctl"),
		kong.Description("Showdown settlement engine tools"),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
