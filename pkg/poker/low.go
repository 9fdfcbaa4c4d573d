package poker

import "fmt"

// EvaluateLow evaluates the best ace-to-five low hand. The Ace counts as one,
// straights and flushes do not disqualify, and a qualifying hand needs five
// distinct values. With eightOrBetter set, all five values must be eight or
// below. A non-qualifying result carries strength zero, which callers must
// treat as "no low" rather than a comparable value.
//
// Wild cards are assigned the lowest values not already used by natural
// cards. Lower is unambiguously better for a low hand, so the greedy
// assignment is optimal; there is no combinatorial interaction to search.
func EvaluateLow(cards []Card, wilds []Card, eightOrBetter bool) HandValue {
	if len(cards) < 5 {
		return HandValue{Rank: Incomplete, Strength: 0, HandDescription: "Incomplete"}
	}

	naturals := make([]Card, len(cards))
	copy(naturals, cards)
	wildCount := 0
	wildSuits := make([]Suit, 0, len(wilds))
	for _, w := range wilds {
		var ok bool
		naturals, ok = removeCard(naturals, w)
		if ok {
			wildCount++
			wildSuits = append(wildSuits, w.suit)
		}
	}

	// One card per low value, lowest first.
	byLow := map[int]Card{}
	for _, c := range naturals {
		v := lowValueToInt(c.value)
		if _, exists := byLow[v]; !exists {
			byLow[v] = c
		}
	}

	chosen := make([]Card, 0, 5)
	values := make([]int, 0, 5)
	wildsLeft := wildCount
	for v := 1; v <= 13 && len(chosen) < 5; v++ {
		if c, ok := byLow[v]; ok {
			chosen = append(chosen, c)
			values = append(values, v)
			continue
		}
		if wildsLeft > 0 {
			wildsLeft--
			suit := Spades
			if len(wildSuits) > wildsLeft {
				suit = wildSuits[wildsLeft]
			}
			chosen = append(chosen, Card{suit: suit, value: lowIntToValue(v)})
			values = append(values, v)
		}
	}

	if len(chosen) < 5 {
		return HandValue{Strength: 0, HandDescription: "No qualifying low"}
	}
	if eightOrBetter && values[4] > 8 {
		return HandValue{Strength: 0, HandDescription: "No qualifying low"}
	}

	// Low hands compare from the highest card down, so the highest value
	// takes the most significant digit.
	strength := 0
	for i := len(values) - 1; i >= 0; i-- {
		strength = strength<<strengthDigitBits | (15 - values[i])
	}

	desc := fmt.Sprintf("%s low", valueName(lowIntToValue(values[4])))
	if values[4] == 5 {
		desc = "Wheel (Five low)"
	}

	return HandValue{
		Rank:            HighCard, // rank is a high-mode concept; low hands compare by strength only
		Strength:        strength,
		BestHand:        chosen,
		PrimaryCards:    chosen,
		HandDescription: desc,
	}
}

// CompareLows compares two low evaluations. A non-qualifying low (strength
// zero) always loses to any qualifying low; two non-qualifiers tie.
func CompareLows(handA, handB HandValue) int {
	switch {
	case handA.Strength == 0 && handB.Strength == 0:
		return 0
	case handA.Strength == 0:
		return -1
	case handB.Strength == 0:
		return 1
	}
	return CompareHands(handA, handB)
}
