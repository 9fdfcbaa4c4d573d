package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobGibbens/CardGames-sub006/pkg/audit"
)

func threePlayerConfig(t *testing.T, rules RulesConfig) ShowdownConfig {
	t.Helper()
	return ShowdownConfig{
		GameID:         "game-1",
		HandNumber:     7,
		Rules:          rules,
		DealerPosition: 2,
		CommunityCards: mustCards(t, "2c 7d 9h Jc Qs"),
		Players: []PlayerSeat{
			{Name: "Alice", Seat: 0, HoleCards: mustCards(t, "Ah Ad")},
			{Name: "Bob", Seat: 1, HoleCards: mustCards(t, "Kh Kd")},
			{Name: "Carol", Seat: 2, HoleCards: mustCards(t, "5h 5d")},
		},
	}
}

func TestNewShowdownValidation(t *testing.T) {
	_, err := NewShowdown(ShowdownConfig{})
	require.Error(t, err)

	cfg := threePlayerConfig(t, RulesConfig{})
	cfg.DealerPosition = 5
	_, err = NewShowdown(cfg)
	require.Error(t, err)

	cfg = threePlayerConfig(t, RulesConfig{})
	cfg.Players = append(cfg.Players, PlayerSeat{Name: "Alice", Seat: 3})
	_, err = NewShowdown(cfg)
	require.Error(t, err)
}

func TestShowdownInitialStatuses(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{AllowMuck: true})
	cfg.Players[1].HasFolded = true

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)

	require.Equal(t, StatusPending, ctx.Player("Alice").Status)
	require.Equal(t, StatusFolded, ctx.Player("Bob").Status)
	require.False(t, ctx.Player("Bob").IsEligibleForPot)
	require.Equal(t, -1, ctx.Player("Alice").RevealOrder)
	require.False(t, ctx.IsShowdownComplete())
}

func TestShowdownBornCompleteWhenAllFolded(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{AllowMuck: true})
	for i := range cfg.Players {
		cfg.Players[i].HasFolded = true
	}

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.True(t, ctx.IsShowdownComplete())
}

// TestLastAggressorForcedReveal walks the canonical reveal sequence: the last
// aggressor must open, later players holding losers may muck.
func TestLastAggressorForcedReveal(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderLastAggressor, AllowMuck: true})
	cfg.LastAggressor = "Alice"

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	// Alice opens and has no muck option.
	next, ok := ctx.GetNextToReveal()
	require.True(t, ok)
	require.Equal(t, "Alice", next)
	require.True(t, ctx.MustPlayerReveal("Alice"))
	require.False(t, ctx.CanPlayerMuck("Alice"))

	res := ctx.ProcessMuck("Alice")
	require.False(t, res.OK)

	res = ctx.ProcessReveal("Alice", nil)
	require.True(t, res.OK)
	require.Equal(t, "Bob", res.NextToReveal)

	alice := ctx.Player("Alice")
	require.Equal(t, StatusForcedReveal, alice.Status)
	require.True(t, alice.WasForcedReveal)
	require.Equal(t, 0, alice.RevealOrder)

	// With a hand face up, Bob may muck his loser.
	require.False(t, ctx.MustPlayerReveal("Bob"))
	require.True(t, ctx.CanPlayerMuck("Bob"))
	res = ctx.ProcessMuck("Bob")
	require.True(t, res.OK)
	require.Equal(t, StatusMucked, ctx.Player("Bob").Status)
	require.False(t, ctx.Player("Bob").IsEligibleForPot)

	// Carol may muck too; a hand is already up to claim the pot.
	require.True(t, ctx.CanPlayerMuck("Carol"))
	res = ctx.ProcessMuck("Carol")
	require.True(t, res.OK)

	require.True(t, ctx.IsShowdownComplete())

	winners := ctx.DetermineWinners()
	require.Len(t, winners, 1)
	require.Equal(t, "Alice", winners[0].Name)
}

func TestLastAggressorTurnEnforcement(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderLastAggressor, AllowMuck: true})
	cfg.LastAggressor = "Alice"

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	res := ctx.ProcessReveal("Carol", nil)
	require.False(t, res.OK)
	require.Equal(t, "Alice", res.NextToReveal)
	require.Equal(t, StatusPending, ctx.Player("Carol").Status)

	// The rejection leaves the sequence intact.
	require.True(t, ctx.ProcessReveal("Alice", nil).OK)
	require.True(t, ctx.ProcessReveal("Bob", nil).OK)
	require.True(t, ctx.ProcessReveal("Carol", nil).OK)
	require.True(t, ctx.IsShowdownComplete())
}

func TestProcessRevealRejections(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: true})
	cfg.Players[2].HasFolded = true

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	assert.False(t, ctx.ProcessReveal("Dave", nil).OK, "unknown player")
	assert.False(t, ctx.ProcessReveal("Carol", nil).OK, "folded player")
	assert.False(t, ctx.ProcessMuck("Carol").OK, "folded player muck")

	require.True(t, ctx.ProcessReveal("Alice", nil).OK)
	assert.False(t, ctx.ProcessReveal("Alice", nil).OK, "double reveal")
	assert.False(t, ctx.ProcessMuck("Alice").OK, "muck after reveal")
}

func TestShowAllOnAllIn(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{
		ShowOrder:      ShowOrderClockwiseFromButton,
		AllowMuck:      true,
		ShowAllOnAllIn: true,
	})
	cfg.HadAllInAction = true

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.True(t, ctx.MustPlayerReveal(name), name)
		require.False(t, ctx.CanPlayerMuck(name), name)
	}
}

func TestAllInPlayerMustRevealUntilHandShown(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: true})
	cfg.Players[1].IsAllIn = true

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	// No hand is face up yet: the all-in player cannot muck.
	require.True(t, ctx.MustPlayerReveal("Bob"))
	require.False(t, ctx.CanPlayerMuck("Bob"))

	// Once a hand is up there is something to compare against.
	require.True(t, ctx.ProcessReveal("Alice", nil).OK)
	require.False(t, ctx.MustPlayerReveal("Bob"))
	require.True(t, ctx.CanPlayerMuck("Bob"))
}

func TestMuckDisallowedVariant(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: false})

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.True(t, ctx.MustPlayerReveal(name), name)
		require.False(t, ctx.ProcessMuck(name).OK, name)
	}
}

func TestClockwiseFromButtonOrder(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderClockwiseFromButton, AllowMuck: false})

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	// Dealer sits at seat index 2; seat 0 opens.
	var acted []string
	for {
		next, ok := ctx.GetNextToReveal()
		if !ok {
			break
		}
		require.True(t, ctx.ProcessReveal(next, nil).OK)
		acted = append(acted, next)
	}
	require.Equal(t, []string{"Alice", "Bob", "Carol"}, acted)
}

func TestCounterClockwiseFromButtonOrder(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderCounterClockwiseFromButton, AllowMuck: false})

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	var acted []string
	for {
		next, ok := ctx.GetNextToReveal()
		if !ok {
			break
		}
		require.True(t, ctx.ProcessReveal(next, nil).OK)
		acted = append(acted, next)
	}
	require.Equal(t, []string{"Bob", "Alice", "Carol"}, acted)
}

func TestDetermineWinnersWithPotsSidePotSplit(t *testing.T) {
	cfg := ShowdownConfig{
		GameID:         "game-2",
		HandNumber:     3,
		Rules:          RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: false},
		DealerPosition: 0,
		CommunityCards: mustCards(t, "2c 3d 7h 8s Jd"),
		Players: []PlayerSeat{
			{Name: "Alice", Seat: 0, HoleCards: mustCards(t, "Ah Ad")},
			{Name: "Bob", Seat: 1, HoleCards: mustCards(t, "As Ac")},
			{Name: "Carol", Seat: 2, HoleCards: mustCards(t, "Kh Kd")},
		},
	}

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.True(t, ctx.ProcessReveal(name, nil).OK)
	}

	// Alice and Bob hold identical aces; Carol's kings lose. The side pot is
	// Alice's alone and settles without comparison.
	results, err := ctx.DetermineWinnersWithPots([]PotInfo{
		{PotIndex: 0, Amount: 300, EligiblePlayers: []string{"Alice", "Bob", "Carol"}, IsMainPot: true},
		{PotIndex: 1, Amount: 100, EligiblePlayers: []string{"Alice"}},
	})
	require.NoError(t, err)

	totals := winnersByName(results)
	require.Equal(t, int64(250), totals["Alice"])
	require.Equal(t, int64(150), totals["Bob"])
	require.Zero(t, totals["Carol"])
	require.Equal(t, int64(400), totalDistributed(results))

	for _, r := range results {
		if r.PotIndex == 0 {
			require.True(t, r.IsTie)
			require.NotNil(t, r.Hand)
			require.Equal(t, "Pair of Aces", r.Hand.HandDescription)
		}
	}
}

func TestDetermineWinnersWithPotsFoldWin(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: true})
	cfg.Players[1].HasFolded = true
	cfg.Players[2].HasFolded = true

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.True(t, ctx.IsShowdownComplete())

	results, err := ctx.DetermineWinnersWithPots([]PotInfo{
		{PotIndex: 0, Amount: 120, EligiblePlayers: []string{"Alice"}, IsMainPot: true},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Alice", results[0].PlayerName)
	require.Equal(t, int64(120), results[0].AmountWon)

	ann := ctx.BuildWinnerAnnouncement(results)
	require.True(t, ann.FoldWin)
	require.Equal(t, "Alice wins 120 uncontested", ann.Text)
}

func TestDetermineWinnersWithPotsMuckedHandExcluded(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: true})

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	// Alice holds the best hand but mucks it; the pot goes to the best
	// revealed hand.
	require.True(t, ctx.ProcessReveal("Bob", nil).OK)
	require.True(t, ctx.ProcessMuck("Alice").OK)
	require.True(t, ctx.ProcessReveal("Carol", nil).OK)

	results, err := ctx.DetermineWinnersWithPots([]PotInfo{
		{PotIndex: 0, Amount: 90, EligiblePlayers: []string{"Alice", "Bob", "Carol"}, IsMainPot: true},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Bob", results[0].PlayerName)
}

func TestDetermineWinnersWithPotsHiLoSplit(t *testing.T) {
	cfg := ShowdownConfig{
		GameID:         "game-3",
		HandNumber:     9,
		Rules:          RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: false},
		DealerPosition: 0,
		Players: []PlayerSeat{
			{Name: "Alice", Seat: 0, HoleCards: mustCards(t, "Ah 2s 3c 4d 6s")},
			{Name: "Bob", Seat: 1, HoleCards: mustCards(t, "Kh Ks Qc Jd 9s")},
		},
	}

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHandsHiLo())
	require.True(t, ctx.ProcessReveal("Alice", nil).OK)
	require.True(t, ctx.ProcessReveal("Bob", nil).OK)

	// Alice has the only qualifying low, Bob the best high.
	results, err := ctx.DetermineWinnersWithPotsHiLo([]PotInfo{
		{PotIndex: 0, Amount: 200, EligiblePlayers: []string{"Alice", "Bob"}, IsMainPot: true},
	})
	require.NoError(t, err)

	totals := winnersByName(results)
	require.Equal(t, int64(100), totals["Alice"])
	require.Equal(t, int64(100), totals["Bob"])

	for _, r := range results {
		switch r.PlayerName {
		case "Alice":
			require.Equal(t, "low", r.PoolName)
			require.Equal(t, "Six low", r.Hand.HandDescription)
		case "Bob":
			require.Equal(t, "high", r.PoolName)
			require.Equal(t, Pair, r.Hand.Rank)
		}
	}
}

func TestDetermineWinnersWithPotsHiLoNoLowRollsUp(t *testing.T) {
	cfg := ShowdownConfig{
		GameID:         "game-4",
		HandNumber:     2,
		Rules:          RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: false},
		DealerPosition: 0,
		Players: []PlayerSeat{
			{Name: "Alice", Seat: 0, HoleCards: mustCards(t, "Ah As Kc Qd Js")},
			{Name: "Bob", Seat: 1, HoleCards: mustCards(t, "Kh Ks Qc Jd 9s")},
		},
	}

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHandsHiLo())
	require.True(t, ctx.ProcessReveal("Alice", nil).OK)
	require.True(t, ctx.ProcessReveal("Bob", nil).OK)

	results, err := ctx.DetermineWinnersWithPotsHiLo([]PotInfo{
		{PotIndex: 0, Amount: 200, EligiblePlayers: []string{"Alice", "Bob"}, IsMainPot: true},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Alice", results[0].PlayerName)
	require.Equal(t, int64(200), results[0].AmountWon)
	require.Equal(t, "high", results[0].PoolName)
}

func TestShowdownAuditTrail(t *testing.T) {
	store := audit.NewMemStore(nil)
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: true})
	cfg.Audit = store

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	require.True(t, ctx.ProcessReveal("Alice", nil).OK)
	require.True(t, ctx.ProcessMuck("Bob").OK)
	require.True(t, ctx.ProcessReveal("Carol", nil).OK)

	_, err = ctx.DetermineWinnersWithPots([]PotInfo{
		{PotIndex: 0, Amount: 100, EligiblePlayers: []string{"Alice", "Bob", "Carol"}, IsMainPot: true},
	})
	require.NoError(t, err)

	entries := store.GetShowdownAudit("game-1", 7)
	var types []audit.EntryType
	for _, e := range entries {
		types = append(types, e.Type)
	}
	require.Equal(t, []audit.EntryType{
		audit.TypeStarted,
		audit.TypeRevealed,
		audit.TypeMucked,
		audit.TypeRevealed,
		audit.TypeCompleted,
		audit.TypeSettled,
	}, types)
}

func TestViewSnapshot(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderClockwiseFromButton, AllowMuck: true})

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))
	require.True(t, ctx.ProcessReveal("Alice", nil).OK)

	view := ctx.View()
	require.Equal(t, "game-1", view.GameID)
	require.Equal(t, "Bob", view.NextToReveal)
	require.False(t, view.Complete)
	require.Len(t, view.Players, 3)

	require.Equal(t, StatusShown, view.Players[0].Status)
	require.NotEmpty(t, view.Players[0].HandDescription)
	require.Empty(t, view.Players[1].HandDescription, "pending hands stay hidden")
}

func TestBuildAnimationSequence(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: true})

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))

	require.True(t, ctx.ProcessReveal("Carol", nil).OK)
	require.True(t, ctx.ProcessReveal("Alice", nil).OK)
	require.True(t, ctx.ProcessMuck("Bob").OK)

	results, err := ctx.DetermineWinnersWithPots([]PotInfo{
		{PotIndex: 0, Amount: 100, EligiblePlayers: []string{"Alice", "Bob", "Carol"}, IsMainPot: true},
	})
	require.NoError(t, err)

	steps := ctx.BuildAnimationSequence(results)
	require.Len(t, steps, 4)
	require.Equal(t, AnimationReveal, steps[0].Kind)
	require.Equal(t, "Carol", steps[0].Player, "reveals play back in reveal order")
	require.Equal(t, AnimationReveal, steps[1].Kind)
	require.Equal(t, "Alice", steps[1].Player)
	require.Equal(t, AnimationMuck, steps[2].Kind)
	require.Equal(t, "Bob", steps[2].Player)
	require.Equal(t, AnimationAward, steps[3].Kind)
	require.Equal(t, "Alice", steps[3].Player)
	require.Equal(t, int64(100), steps[3].Amount)
}

func TestBuildWinnerAnnouncementText(t *testing.T) {
	cfg := threePlayerConfig(t, RulesConfig{ShowOrder: ShowOrderSimultaneous, AllowMuck: false})

	ctx, err := NewShowdown(cfg)
	require.NoError(t, err)
	require.NoError(t, ctx.EvaluateHands(RankHigh))
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.True(t, ctx.ProcessReveal(name, nil).OK)
	}

	results, err := ctx.DetermineWinnersWithPots([]PotInfo{
		{PotIndex: 0, Amount: 300, EligiblePlayers: []string{"Alice", "Bob", "Carol"}, IsMainPot: true},
	})
	require.NoError(t, err)

	ann := ctx.BuildWinnerAnnouncement(results)
	require.False(t, ann.FoldWin)
	require.Equal(t, "Alice wins 300 with Pair of Aces", ann.Text)
	require.Equal(t, "game-1", ann.GameID)
	require.Equal(t, 7, ann.HandNumber)
}
