package poker

// RankingMode selects how a hand is ranked at showdown.
type RankingMode int

const (
	RankHigh RankingMode = iota
	RankLowAceToFive
	RankLowEightOrBetter
)

// EvaluateBestHand evaluates the best hand obtainable from the dealt cards
// where the cards listed in wilds may substitute for any rank and suit. The
// wilds slice identifies specific dealt cards (the dealing engine decides wild
// eligibility, including dynamic rules like "lowest card wild").
func EvaluateBestHand(cards []Card, wilds []Card, mode RankingMode) HandValue {
	switch mode {
	case RankLowAceToFive:
		return EvaluateLow(cards, wilds, false)
	case RankLowEightOrBetter:
		return EvaluateLow(cards, wilds, true)
	default:
		return EvaluateWithWilds(cards, wilds)
	}
}

// EvaluateWithWilds evaluates the best high hand after assigning each wild
// card the rank and suit that maximizes strength. The substitution search is
// pruned: each wild slot only tries ranks that can complete a pair group, a
// straight or a flush with the natural cards, plus the Ace as best kicker.
// Any optimal assignment falls in one of those buckets, so the pruned search
// still finds the true maximum.
func EvaluateWithWilds(cards []Card, wilds []Card) HandValue {
	if len(cards) < 5 {
		return HandValue{Rank: Incomplete, Strength: 0, HandDescription: "Incomplete"}
	}

	naturals := make([]Card, len(cards))
	copy(naturals, cards)
	wildCount := 0
	for _, w := range wilds {
		var ok bool
		naturals, ok = removeCard(naturals, w)
		if ok {
			wildCount++
		}
	}

	if wildCount == 0 {
		return EvaluateHigh(cards)
	}

	// Five wilds in play always make five Aces; nothing can beat it.
	if wildCount >= 5 {
		return classifyFive([]Card{
			{suit: Spades, value: Ace},
			{suit: Hearts, value: Ace},
			{suit: Diamonds, value: Ace},
			{suit: Clubs, value: Ace},
			{suit: Spades, value: Ace},
		})
	}

	candidates := wildCandidates(naturals, wildCount)

	best := HandValue{Rank: Incomplete}
	assignment := make([]Card, 0, wildCount)

	var search func(start int)
	search = func(start int) {
		if len(assignment) == wildCount {
			hand := make([]Card, 0, len(naturals)+wildCount)
			hand = append(hand, naturals...)
			hand = append(hand, assignment...)
			hv := EvaluateHigh(hand)
			if hv.Strength > best.Strength {
				best = hv
			}
			return
		}
		// Assignments are multisets; keeping indices non-decreasing avoids
		// re-evaluating permutations of the same substitution.
		for i := start; i < len(candidates); i++ {
			assignment = append(assignment, candidates[i])
			search(i)
			assignment = assignment[:len(assignment)-1]
		}
	}
	search(0)

	return best
}

// wildCandidates builds the pruned substitution universe for the wild slots:
// every natural rank (pair, trips, quads, fives completion), every rank that
// fills a straight window reachable with the available wilds, and the Ace as
// kicker fallback. Suits are restricted to suits that can still make a flush
// plus one fixed default.
func wildCandidates(naturals []Card, wildCount int) []Card {
	rankSet := map[int]bool{}
	for _, c := range naturals {
		rankSet[valueToInt(c.value)] = true
	}

	candidateRanks := map[int]bool{14: true} // Ace is always the best kicker
	for v := range rankSet {
		candidateRanks[v] = true
	}

	// Straight windows: a window of five consecutive values is reachable when
	// the naturals cover at least 5-wildCount of it. The wheel window treats
	// the Ace as value one.
	for high := 5; high <= 14; high++ {
		present := 0
		missing := []int{}
		for v := high - 4; v <= high; v++ {
			card := v
			if card == 1 {
				card = 14 // Ace playing low
			}
			if rankSet[card] {
				present++
			} else {
				missing = append(missing, card)
			}
		}
		if present+wildCount >= 5 {
			for _, v := range missing {
				candidateRanks[v] = true
			}
		}
	}

	// Flush-capable suits: suits where naturals plus wilds can reach five.
	suitCounts := map[Suit]int{}
	for _, c := range naturals {
		suitCounts[c.suit]++
	}
	candidateSuits := map[Suit]bool{Spades: true}
	for suit, n := range suitCounts {
		if n+wildCount >= 5 {
			candidateSuits[suit] = true
		}
	}

	// Fixed ordering keeps the search, and therefore tie-broken BestHand
	// output, deterministic.
	candidates := make([]Card, 0, len(candidateRanks)*len(candidateSuits))
	for v := 14; v >= 2; v-- {
		if !candidateRanks[v] {
			continue
		}
		for _, suit := range Suits {
			if candidateSuits[suit] {
				candidates = append(candidates, Card{suit: suit, value: intToValue(v)})
			}
		}
	}
	return candidates
}
