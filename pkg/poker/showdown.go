package poker

import (
	"fmt"

	"github.com/decred/slog"
	"golang.org/x/sync/errgroup"

	"github.com/RobGibbens/CardGames-sub006/pkg/audit"
	"github.com/RobGibbens/CardGames-sub006/pkg/statemachine"
)

// RevealStatus represents a player's state in the showdown reveal protocol.
// Pending transitions to Shown, ForcedReveal or Mucked; Folded is set before
// showdown starts and is terminal.
type RevealStatus int

const (
	StatusPending RevealStatus = iota
	StatusShown
	StatusForcedReveal
	StatusMucked
	StatusFolded
)

// String returns a human-readable name for the reveal status.
func (s RevealStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusShown:
		return "shown"
	case StatusForcedReveal:
		return "forced_reveal"
	case StatusMucked:
		return "mucked"
	case StatusFolded:
		return "folded"
	default:
		return "unknown"
	}
}

// RulesConfig holds the variant rules governing reveal order and mucking.
type RulesConfig struct {
	ShowOrder      ShowOrder
	AllowMuck      bool
	ShowAllOnAllIn bool
}

// ShowdownPlayer is the mutable per-hand record for one player at showdown.
// It is created at showdown initialization and mutated only through the
// coordinator's transition operations.
type ShowdownPlayer struct {
	Name             string
	Seat             int
	HoleCards        []Card
	WildCards        []Card
	Hand             *HandValue
	HiLo             *HiLoResult
	Status           RevealStatus
	RevealOrder      int // -1 until the player reveals
	WasForcedReveal  bool
	IsEligibleForPot bool
	HasFolded        bool
	IsAllIn          bool
	TotalBetAmount   int64
}

// PlayerSeat seeds one player into a new showdown from the betting-round
// outcome.
type PlayerSeat struct {
	Name           string
	Seat           int
	HoleCards      []Card
	WildCards      []Card
	HasFolded      bool
	IsAllIn        bool
	TotalBetAmount int64
}

// ShowdownConfig holds configuration for a new showdown
type ShowdownConfig struct {
	GameID         string
	HandNumber     int
	Rules          RulesConfig
	LastAggressor  string
	HadAllInAction bool
	DealerPosition int // index into Players
	CommunityCards []Card
	Players        []PlayerSeat
	Log            slog.Logger
	Audit          audit.Store // optional
}

// ActionResult is the structured outcome of a reveal or muck attempt.
// Rejections are not errors: the turn gate re-prompts using Reason and
// NextToReveal without tearing down showdown state.
type ActionResult struct {
	OK           bool
	Reason       string
	NextToReveal string
}

func rejected(reason, next string) ActionResult {
	return ActionResult{OK: false, Reason: reason, NextToReveal: next}
}

// ShowdownContext tracks one hand's showdown. It is owned by a single logical
// hand and its operations must be invoked sequentially; the turn gate that
// serializes player actions provides that guarantee.
type ShowdownContext struct {
	cfg    ShowdownConfig
	log    slog.Logger
	audit  audit.Store
	orders []*ShowdownPlayer // seat order as supplied
	byName map[string]*ShowdownPlayer

	currentRevealOrder int
	lastActedSeat      int // index of the last player to reveal or muck, -1 initially
	complete           bool

	nextFn  revealOrderFn
	machine *statemachine.StateMachine[ShowdownContext]
}

// NewShowdown initializes the showdown state machine for one hand. Folded
// players are marked terminal immediately; everyone else starts Pending.
func NewShowdown(cfg ShowdownConfig) (*ShowdownContext, error) {
	if len(cfg.Players) == 0 {
		return nil, fmt.Errorf("showdown requires at least one player")
	}
	if cfg.DealerPosition < 0 || cfg.DealerPosition >= len(cfg.Players) {
		return nil, fmt.Errorf("dealer position %d out of range", cfg.DealerPosition)
	}

	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}

	c := &ShowdownContext{
		cfg:           cfg,
		log:           log,
		audit:         cfg.Audit,
		byName:        make(map[string]*ShowdownPlayer, len(cfg.Players)),
		lastActedSeat: -1,
		nextFn:        revealOrderPolicy(cfg.Rules.ShowOrder),
	}

	for _, seat := range cfg.Players {
		if _, dup := c.byName[seat.Name]; dup {
			return nil, fmt.Errorf("duplicate player name %q", seat.Name)
		}
		p := &ShowdownPlayer{
			Name:             seat.Name,
			Seat:             seat.Seat,
			HoleCards:        seat.HoleCards,
			WildCards:        seat.WildCards,
			Status:           StatusPending,
			RevealOrder:      -1,
			IsEligibleForPot: !seat.HasFolded,
			HasFolded:        seat.HasFolded,
			IsAllIn:          seat.IsAllIn,
			TotalBetAmount:   seat.TotalBetAmount,
		}
		if seat.HasFolded {
			p.Status = StatusFolded
		}
		c.orders = append(c.orders, p)
		c.byName[seat.Name] = p
	}

	c.machine = statemachine.NewStateMachine(c, showdownStateRevealing)

	c.log.Debugf("showdown started: game=%s hand=%d players=%d aggressor=%q allin=%v",
		cfg.GameID, cfg.HandNumber, len(cfg.Players), cfg.LastAggressor, cfg.HadAllInAction)
	c.record(audit.TypeStarted, "", fmt.Sprintf("%d players", len(cfg.Players)))

	// A showdown can be born complete when everyone already folded.
	c.machine.Step()

	return c, nil
}

func (c *ShowdownContext) record(typ audit.EntryType, player, detail string) {
	if c.audit == nil {
		return
	}
	c.audit.AddEntry(audit.Entry{
		GameID:     c.cfg.GameID,
		HandNumber: c.cfg.HandNumber,
		Type:       typ,
		Player:     player,
		Detail:     detail,
	})
}

// Showdown hand phases. Revealing lasts until no non-folded player remains
// pending, Complete until settlement, Settled is terminal.

func showdownStateRevealing(c *ShowdownContext) statemachine.StateFn[ShowdownContext] {
	if c.computeComplete() {
		c.complete = true
		c.log.Debugf("showdown complete: game=%s hand=%d", c.cfg.GameID, c.cfg.HandNumber)
		c.record(audit.TypeCompleted, "", "")
		return showdownStateComplete
	}
	return showdownStateRevealing
}

func showdownStateComplete(c *ShowdownContext) statemachine.StateFn[ShowdownContext] {
	return showdownStateComplete
}

func showdownStateSettled(c *ShowdownContext) statemachine.StateFn[ShowdownContext] {
	return nil
}

// GameID returns the game this showdown belongs to.
func (c *ShowdownContext) GameID() string { return c.cfg.GameID }

// HandNumber returns the hand number this showdown belongs to.
func (c *ShowdownContext) HandNumber() int { return c.cfg.HandNumber }

// Players returns the showdown players in seat order.
func (c *ShowdownContext) Players() []*ShowdownPlayer { return c.orders }

// Player returns the named player, or nil.
func (c *ShowdownContext) Player(name string) *ShowdownPlayer { return c.byName[name] }

// EvaluateHands evaluates every non-folded player's best hand in parallel.
// The evaluators are pure functions over distinct player records, so the only
// coordination needed is waiting for the group.
func (c *ShowdownContext) EvaluateHands(mode RankingMode) error {
	var g errgroup.Group
	for _, p := range c.orders {
		if p.HasFolded {
			continue
		}
		g.Go(func() error {
			cards := make([]Card, 0, len(p.HoleCards)+len(c.cfg.CommunityCards))
			cards = append(cards, p.HoleCards...)
			cards = append(cards, c.cfg.CommunityCards...)
			hv := EvaluateBestHand(cards, p.WildCards, mode)
			p.Hand = &hv
			return nil
		})
	}
	return g.Wait()
}

// EvaluateHandsHiLo evaluates both halves of every non-folded player's hand
// for hi/lo split settlement.
func (c *ShowdownContext) EvaluateHandsHiLo() error {
	var g errgroup.Group
	for _, p := range c.orders {
		if p.HasFolded {
			continue
		}
		g.Go(func() error {
			cards := make([]Card, 0, len(p.HoleCards)+len(c.cfg.CommunityCards))
			cards = append(cards, p.HoleCards...)
			cards = append(cards, c.cfg.CommunityCards...)
			res := EvaluateHiLo(cards, p.WildCards)
			p.HiLo = &res
			p.Hand = &res.High
			return nil
		})
	}
	return g.Wait()
}

// GetNextToReveal returns the player expected to act next under the
// configured show order, or false when nobody is pending. Under Simultaneous
// order the returned player is a suggestion only; any pending player may act.
func (c *ShowdownContext) GetNextToReveal() (string, bool) {
	next := c.nextFn(c)
	if next == nil {
		return "", false
	}
	return next.Name, true
}

// anyHandShown reports whether at least one hand is already face up.
func (c *ShowdownContext) anyHandShown() bool {
	for _, p := range c.orders {
		if (p.Status == StatusShown || p.Status == StatusForcedReveal) && p.Hand != nil {
			return true
		}
	}
	return false
}

// pendingCount counts non-folded players still awaiting a decision.
func (c *ShowdownContext) pendingCount() int {
	n := 0
	for _, p := range c.orders {
		if p.Status == StatusPending {
			n++
		}
	}
	return n
}

// MustPlayerReveal reports whether the named player has no choice but to show.
// It must be evaluated before the reveal-order counter is incremented: the
// first-to-reveal rule depends on the pre-increment value.
func (c *ShowdownContext) MustPlayerReveal(name string) bool {
	p := c.byName[name]
	if p == nil || p.Status != StatusPending {
		return false
	}

	// Everyone shows when an all-in was called and the variant says so.
	if c.cfg.HadAllInAction && c.cfg.Rules.ShowAllOnAllIn {
		return true
	}
	// The last aggressor opens the showdown.
	if c.cfg.Rules.ShowOrder == ShowOrderLastAggressor &&
		name == c.cfg.LastAggressor && c.currentRevealOrder == 0 {
		return true
	}
	// An all-in player shows unless a hand is already face up to compare to.
	if p.IsAllIn && !c.anyHandShown() {
		return true
	}
	// Some variants disallow mucking entirely.
	if !c.cfg.Rules.AllowMuck {
		return true
	}
	// The sole remaining pending player must show to claim the pot when no
	// hand has been shown yet.
	if c.pendingCount() == 1 && !c.anyHandShown() {
		return true
	}
	return false
}

// CanPlayerMuck reports whether the named player may decline to show.
func (c *ShowdownContext) CanPlayerMuck(name string) bool {
	p := c.byName[name]
	if p == nil || p.HasFolded || p.Status != StatusPending {
		return false
	}
	return !c.MustPlayerReveal(name)
}

// checkTurn validates that it is the named player's turn. Simultaneous order
// enforces no turn.
func (c *ShowdownContext) checkTurn(p *ShowdownPlayer) (ActionResult, bool) {
	if c.cfg.Rules.ShowOrder == ShowOrderSimultaneous {
		return ActionResult{}, true
	}
	next := c.nextFn(c)
	if next != nil && next != p {
		return rejected(fmt.Sprintf("not %s's turn to act", p.Name), next.Name), false
	}
	return ActionResult{}, true
}

// ProcessReveal records the named player showing their hand. A nil hand uses
// the evaluation stored by EvaluateHands.
func (c *ShowdownContext) ProcessReveal(name string, hand *HandValue) ActionResult {
	p := c.byName[name]
	if p == nil {
		return rejected(fmt.Sprintf("unknown player %q", name), c.nextName())
	}
	if p.HasFolded {
		return rejected(fmt.Sprintf("%s has folded", name), c.nextName())
	}
	if p.Status != StatusPending {
		return rejected(fmt.Sprintf("%s has already acted (%s)", name, p.Status), c.nextName())
	}
	if res, ok := c.checkTurn(p); !ok {
		return res
	}

	// Forced-show is decided against the pre-increment reveal order.
	forced := c.MustPlayerReveal(name)

	if hand != nil {
		p.Hand = hand
	}
	p.RevealOrder = c.currentRevealOrder
	c.currentRevealOrder++
	p.WasForcedReveal = forced
	if forced {
		p.Status = StatusForcedReveal
	} else {
		p.Status = StatusShown
	}
	c.lastActedSeat = c.seatIndexOf(p)

	desc := ""
	if p.Hand != nil {
		desc = p.Hand.HandDescription
	}
	c.log.Debugf("reveal: game=%s hand=%d player=%s forced=%v %s",
		c.cfg.GameID, c.cfg.HandNumber, name, forced, desc)
	c.record(audit.TypeRevealed, name, desc)

	c.machine.Step()
	return ActionResult{OK: true, NextToReveal: c.nextName()}
}

// ProcessMuck records the named player declining to show, forfeiting any pot
// claim.
func (c *ShowdownContext) ProcessMuck(name string) ActionResult {
	p := c.byName[name]
	if p == nil {
		return rejected(fmt.Sprintf("unknown player %q", name), c.nextName())
	}
	if p.HasFolded {
		return rejected(fmt.Sprintf("%s has folded", name), c.nextName())
	}
	if p.Status != StatusPending {
		return rejected(fmt.Sprintf("%s has already acted (%s)", name, p.Status), c.nextName())
	}
	if res, ok := c.checkTurn(p); !ok {
		return res
	}
	if !c.CanPlayerMuck(name) {
		return rejected(fmt.Sprintf("%s must reveal and cannot muck", name), c.nextName())
	}

	p.Status = StatusMucked
	p.IsEligibleForPot = false
	c.lastActedSeat = c.seatIndexOf(p)

	c.log.Debugf("muck: game=%s hand=%d player=%s", c.cfg.GameID, c.cfg.HandNumber, name)
	c.record(audit.TypeMucked, name, "")

	c.machine.Step()
	return ActionResult{OK: true, NextToReveal: c.nextName()}
}

func (c *ShowdownContext) nextName() string {
	name, _ := c.GetNextToReveal()
	return name
}

func (c *ShowdownContext) seatIndexOf(p *ShowdownPlayer) int {
	for i, q := range c.orders {
		if q == p {
			return i
		}
	}
	return -1
}

func (c *ShowdownContext) computeComplete() bool {
	// A hand with at most one live player ends uncontested; the survivor
	// never has to show.
	live := 0
	for _, p := range c.orders {
		if !p.HasFolded {
			live++
		}
	}
	if live <= 1 {
		return true
	}
	for _, p := range c.orders {
		if p.Status == StatusPending {
			return false
		}
	}
	return true
}

// IsShowdownComplete reports whether every non-folded player has shown,
// been forced to show, or mucked, or the hand ended uncontested.
func (c *ShowdownContext) IsShowdownComplete() bool {
	return c.complete
}

// DetermineWinners returns the players holding the strongest revealed hand.
// Ties return multiple players.
func (c *ShowdownContext) DetermineWinners() []*ShowdownPlayer {
	var winners []*ShowdownPlayer
	best := 0
	for _, p := range c.orders {
		if p.Status != StatusShown && p.Status != StatusForcedReveal {
			continue
		}
		if p.Hand == nil {
			continue
		}
		switch {
		case p.Hand.Strength > best:
			best = p.Hand.Strength
			winners = []*ShowdownPlayer{p}
		case p.Hand.Strength == best:
			winners = append(winners, p)
		}
	}
	return winners
}

// seatRotation returns player names in seat order starting immediately left
// of the dealer; the settler uses it for deterministic remainder assignment.
func (c *ShowdownContext) seatRotation() []string {
	n := len(c.orders)
	rotation := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		rotation = append(rotation, c.orders[(c.cfg.DealerPosition+i)%n].Name)
	}
	return rotation
}

// revealedEligible filters the given names down to players whose hands are
// face up and who still claim the pot.
func (c *ShowdownContext) revealedEligible(eligible []string) []*ShowdownPlayer {
	var out []*ShowdownPlayer
	for _, name := range eligible {
		p := c.byName[name]
		if p == nil || !p.IsEligibleForPot {
			continue
		}
		if p.Status != StatusShown && p.Status != StatusForcedReveal {
			continue
		}
		if p.Hand == nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DetermineWinnersWithPots settles the supplied pot structure against the
// revealed hands: each pot goes to the strongest hand(s) among its eligible
// players, with fold-wins short-circuited by the settler.
func (c *ShowdownContext) DetermineWinnersWithPots(pots []PotInfo) ([]WinnerDetermination, error) {
	settler := NewSettler(c.seatRotation(), c.log)

	results, err := settler.SettlePots(pots, func(eligible []string) []string {
		contenders := c.revealedEligible(eligible)
		var winners []string
		best := 0
		for _, p := range contenders {
			switch {
			case p.Hand.Strength > best:
				best = p.Hand.Strength
				winners = []string{p.Name}
			case p.Hand.Strength == best:
				winners = append(winners, p.Name)
			}
		}
		return winners
	})
	if err != nil {
		return nil, err
	}

	c.enrichAndRecord(results)
	return results, nil
}

// DetermineWinnersWithPotsHiLo settles each pot split between the best
// qualifying low and the best high. Pots with no qualifying low roll the low
// half into the high half.
func (c *ShowdownContext) DetermineWinnersWithPotsHiLo(pots []PotInfo) ([]WinnerDetermination, error) {
	settler := NewSettler(c.seatRotation(), c.log)

	results, err := settler.SettlePotsDual(pots, func(eligible []string) (low, high []string) {
		contenders := c.revealedEligible(eligible)

		bestLow, bestHigh := 0, 0
		for _, p := range contenders {
			if p.HiLo == nil {
				continue
			}
			if ls := p.HiLo.Low.Strength; ls > bestLow {
				bestLow = ls
			}
			if h := p.HiLo.High.Strength; h > bestHigh {
				bestHigh = h
			}
		}
		for _, p := range contenders {
			if p.HiLo == nil {
				continue
			}
			if bestLow > 0 && p.HiLo.Low.Strength == bestLow {
				low = append(low, p.Name)
			}
			if p.HiLo.High.Strength == bestHigh && bestHigh > 0 {
				high = append(high, p.Name)
			}
		}
		return low, high
	}, RollupToOtherPool, "low", "high")
	if err != nil {
		return nil, err
	}

	c.enrichAndRecord(results)
	return results, nil
}

// enrichAndRecord attaches hand details to settlement entries and writes the
// settled audit records. Settlement moves the hand phase to Settled.
func (c *ShowdownContext) enrichAndRecord(results []WinnerDetermination) {
	for i := range results {
		p := c.byName[results[i].PlayerName]
		if p == nil {
			continue
		}
		if results[i].PoolName == "low" && p.HiLo != nil {
			results[i].Hand = &p.HiLo.Low
			results[i].WinningCards = p.HiLo.Low.BestHand
		} else if p.Hand != nil {
			results[i].Hand = p.Hand
			results[i].WinningCards = p.Hand.BestHand
		}
		results[i].HoleCards = p.HoleCards

		c.record(audit.TypeSettled, p.Name,
			fmt.Sprintf("won %d from pot %d", results[i].AmountWon, results[i].PotIndex))
	}
	c.machine.Dispatch(showdownStateSettled)
}

// PlayerStateView is one player's slice of the live showdown view.
type PlayerStateView struct {
	Name            string
	Status          RevealStatus
	RevealOrder     int
	WasForcedReveal bool
	HandDescription string // empty until the hand is face up
}

// StateView is the live showdown state exposed to the notification
// collaborator for progressive reveal animation.
type StateView struct {
	GameID       string
	HandNumber   int
	Players      []PlayerStateView
	NextToReveal string
	Complete     bool
}

// View snapshots the current showdown state.
func (c *ShowdownContext) View() StateView {
	view := StateView{
		GameID:     c.cfg.GameID,
		HandNumber: c.cfg.HandNumber,
		Complete:   c.complete,
	}
	view.NextToReveal = c.nextName()
	for _, p := range c.orders {
		pv := PlayerStateView{
			Name:            p.Name,
			Status:          p.Status,
			RevealOrder:     p.RevealOrder,
			WasForcedReveal: p.WasForcedReveal,
		}
		if (p.Status == StatusShown || p.Status == StatusForcedReveal) && p.Hand != nil {
			pv.HandDescription = p.Hand.HandDescription
		}
		view.Players = append(view.Players, pv)
	}
	return view
}
