package poker

import (
	"fmt"
	"sort"

	"github.com/decred/slog"
)

// PotInfo describes one pot awaiting settlement. The betting layer produces
// pots from per-player contributions; settlement consumes them read-only.
type PotInfo struct {
	PotIndex        int
	Amount          int64
	EligiblePlayers []string
	IsMainPot       bool
}

// WinnerDetermination is one (pot, winner) settlement entry. For every pot the
// AmountWon entries referencing it sum to the pot amount exactly; no chip is
// created or destroyed by rounding.
type WinnerDetermination struct {
	PlayerName   string
	Hand         *HandValue
	WinningCards []Card
	HoleCards    []Card
	AmountWon    int64
	PotIndex     int
	PoolName     string // set for dual-pool settlements ("high"/"low", ...)
	IsTie        bool
}

// WinnerFunc determines the winner set among the eligible players of one pot.
type WinnerFunc func(eligible []string) []string

// DualWinnerFunc determines two independent winner sets per pot, e.g. a
// qualifying low pool and a best-high pool.
type DualWinnerFunc func(eligible []string) (poolA, poolB []string)

// RollupPolicy decides where an orphaned pool's chips go when its winner set
// is empty. The policy is caller-supplied because variants differ on the
// tie-break; RollupToOtherPool matches the common "no qualifier, high hand
// takes it all" rule.
type RollupPolicy int

const (
	RollupToOtherPool RollupPolicy = iota
)

// Settler splits pot amounts across winner sets with deterministic remainder
// assignment. Remainder chips go one per winner in ascending seat order
// starting immediately left of the dealer; seatOrder supplies that rotation.
type Settler struct {
	log       slog.Logger
	seatOrder []string
	seatIndex map[string]int
}

// NewSettler creates a settler for the given seat rotation. A nil logger
// disables logging.
func NewSettler(seatOrder []string, log slog.Logger) *Settler {
	if log == nil {
		log = slog.Disabled
	}
	seatIndex := make(map[string]int, len(seatOrder))
	for i, name := range seatOrder {
		seatIndex[name] = i
	}
	return &Settler{log: log, seatOrder: seatOrder, seatIndex: seatIndex}
}

// SettlePots settles every pot independently using a single winner pool.
func (s *Settler) SettlePots(pots []PotInfo, determine WinnerFunc) ([]WinnerDetermination, error) {
	var results []WinnerDetermination

	for _, pot := range pots {
		if pot.Amount == 0 {
			continue
		}
		if len(pot.EligiblePlayers) == 0 {
			return nil, fmt.Errorf("pot %d has no eligible players", pot.PotIndex)
		}

		// Fold-win: a single eligible player takes the pot outright, with no
		// hand comparison and no qualifier check.
		if len(pot.EligiblePlayers) == 1 {
			results = append(results, WinnerDetermination{
				PlayerName: pot.EligiblePlayers[0],
				AmountWon:  pot.Amount,
				PotIndex:   pot.PotIndex,
			})
			continue
		}

		winners := determine(pot.EligiblePlayers)
		if len(winners) == 0 {
			return nil, fmt.Errorf("pot %d produced no winners", pot.PotIndex)
		}

		entries := s.splitPool(pot.Amount, winners, pot.PotIndex, "")
		if err := s.checkConservation(pot, entries); err != nil {
			return nil, err
		}
		results = append(results, entries...)
	}

	return results, nil
}

// SettlePotsDual settles every pot split between two pools: poolA receives
// half the pot rounded down and poolB absorbs the odd chip. An empty pool
// rolls into the other pool per the supplied policy.
func (s *Settler) SettlePotsDual(pots []PotInfo, determine DualWinnerFunc, policy RollupPolicy, poolAName, poolBName string) ([]WinnerDetermination, error) {
	var results []WinnerDetermination

	for _, pot := range pots {
		if pot.Amount == 0 {
			continue
		}
		if len(pot.EligiblePlayers) == 0 {
			return nil, fmt.Errorf("pot %d has no eligible players", pot.PotIndex)
		}

		if len(pot.EligiblePlayers) == 1 {
			results = append(results, WinnerDetermination{
				PlayerName: pot.EligiblePlayers[0],
				AmountWon:  pot.Amount,
				PotIndex:   pot.PotIndex,
			})
			continue
		}

		poolA := pot.Amount / 2
		poolB := pot.Amount - poolA

		aWinners, bWinners := determine(pot.EligiblePlayers)
		if len(aWinners) == 0 && len(bWinners) == 0 {
			return nil, fmt.Errorf("pot %d produced no winners in either pool", pot.PotIndex)
		}

		// policy currently has a single variant; the parameter exists so
		// callers state the rollup rule explicitly.
		_ = policy
		if len(aWinners) == 0 {
			s.log.Debugf("pot %d: %s pool empty, rolling %d into %s pool",
				pot.PotIndex, poolAName, poolA, poolBName)
			poolB += poolA
			poolA = 0
		} else if len(bWinners) == 0 {
			s.log.Debugf("pot %d: %s pool empty, rolling %d into %s pool",
				pot.PotIndex, poolBName, poolB, poolAName)
			poolA += poolB
			poolB = 0
		}

		var entries []WinnerDetermination
		if poolA > 0 {
			entries = append(entries, s.splitPool(poolA, aWinners, pot.PotIndex, poolAName)...)
		}
		if poolB > 0 {
			entries = append(entries, s.splitPool(poolB, bWinners, pot.PotIndex, poolBName)...)
		}
		if err := s.checkConservation(pot, entries); err != nil {
			return nil, err
		}
		results = append(results, entries...)
	}

	return results, nil
}

// splitPool divides amount among winners: equal integer shares, remainder
// chips one per winner in seat order.
func (s *Settler) splitPool(amount int64, winners []string, potIndex int, poolName string) []WinnerDetermination {
	ordered := s.orderBySeat(winners)
	share := amount / int64(len(ordered))
	remainder := amount % int64(len(ordered))

	entries := make([]WinnerDetermination, 0, len(ordered))
	for i, name := range ordered {
		won := share
		if int64(i) < remainder {
			won++
		}
		entries = append(entries, WinnerDetermination{
			PlayerName: name,
			AmountWon:  won,
			PotIndex:   potIndex,
			PoolName:   poolName,
			IsTie:      len(ordered) > 1,
		})
	}
	return entries
}

// orderBySeat returns the names sorted by seat rotation. Names outside the
// rotation sort last, alphabetically, so the split never depends on map or
// input iteration order.
func (s *Settler) orderBySeat(names []string) []string {
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, iOK := s.seatIndex[ordered[i]]
		sj, jOK := s.seatIndex[ordered[j]]
		switch {
		case iOK && jOK:
			return si < sj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return ordered[i] < ordered[j]
		}
	})
	return ordered
}

// checkConservation verifies the money-conservation invariant for one pot. A
// violation is a programmer error, not a recoverable condition.
func (s *Settler) checkConservation(pot PotInfo, entries []WinnerDetermination) error {
	var total int64
	for _, e := range entries {
		total += e.AmountWon
	}
	if total != pot.Amount {
		s.log.Errorf("pot %d: distributed %d != pot amount %d", pot.PotIndex, total, pot.Amount)
		return fmt.Errorf("pot %d: distributed %d does not equal pot amount %d",
			pot.PotIndex, total, pot.Amount)
	}
	return nil
}
