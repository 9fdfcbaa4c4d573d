package poker

import (
	"fmt"
	"sort"
)

// HandRank represents the rank of a poker hand
type HandRank int

const (
	// Incomplete is the sentinel for fewer than five cards. It is not an
	// error: partial hands occur during live play (odds display).
	Incomplete HandRank = iota
	HighCard
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	FiveOfAKind // only reachable with wild cards
)

// String returns a human-readable name for the hand rank.
func (r HandRank) String() string {
	switch r {
	case Incomplete:
		return "Incomplete"
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case FiveOfAKind:
		return "Five of a Kind"
	default:
		return "Unknown"
	}
}

// HandValue represents a complete evaluation of a hand. Higher Strength is
// always better within one evaluation mode; the rank contributes the
// most-significant digits so that comparing Strength alone is a total order.
type HandValue struct {
	Rank            HandRank
	Strength        int
	BestHand        []Card // The 5 cards that make up the best hand
	PrimaryCards    []Card // Cards forming the defining group(s)
	Kickers         []Card // Remaining cards in descending order
	HandDescription string
}

// strengthDigitBits is the width of each tie-break digit in the strength
// encoding. Card values fit in a nibble (2..14).
const strengthDigitBits = 4

// encodeStrength packs a hand rank and up to five significance-ordered
// tie-break digits into a single comparable integer.
func encodeStrength(rank HandRank, digits ...int) int {
	s := int(rank)
	for i := 0; i < 5; i++ {
		s <<= strengthDigitBits
		if i < len(digits) {
			s |= digits[i]
		}
	}
	return s
}

// CompareHands compares two hand values and returns:
// -1 if handA < handB (handA is worse)
// 0 if handA == handB (tie)
// 1 if handA > handB (handA is better)
func CompareHands(handA, handB HandValue) int {
	if handA.Strength < handB.Strength {
		return -1
	}
	if handA.Strength > handB.Strength {
		return 1
	}
	return 0
}

// EvaluateHigh evaluates the best 5-card high hand obtainable from 5 to 7
// cards. Fewer than five cards yields the Incomplete sentinel with strength 0.
func EvaluateHigh(cards []Card) HandValue {
	if len(cards) < 5 {
		return HandValue{Rank: Incomplete, Strength: 0, HandDescription: "Incomplete"}
	}
	if len(cards) == 5 {
		return classifyFive(cards)
	}

	best := HandValue{Rank: Incomplete}
	for _, combo := range generateCombinations(cards, 5) {
		hv := classifyFive(combo)
		if hv.Strength > best.Strength {
			best = hv
		}
	}
	return best
}

// valueGroup collects the cards sharing one value.
type valueGroup struct {
	value int
	cards []Card
}

// classifyFive classifies exactly five cards.
func classifyFive(cards []Card) HandValue {
	sorted := make([]Card, 5)
	copy(sorted, cards)
	sortCardsByValueDesc(sorted)

	// Group cards by value, strongest group first.
	byValue := map[int][]Card{}
	for _, c := range sorted {
		v := valueToInt(c.value)
		byValue[v] = append(byValue[v], c)
	}
	groups := make([]valueGroup, 0, len(byValue))
	for v, cs := range byValue {
		groups = append(groups, valueGroup{value: v, cards: cs})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].cards) != len(groups[j].cards) {
			return len(groups[i].cards) > len(groups[j].cards)
		}
		return groups[i].value > groups[j].value
	})

	flush := true
	for _, c := range sorted[1:] {
		if c.suit != sorted[0].suit {
			flush = false
			break
		}
	}

	straightHigh := straightHighValue(sorted)

	hv := HandValue{BestHand: sorted}

	switch {
	case len(groups[0].cards) == 5:
		hv.Rank = FiveOfAKind
		hv.Strength = encodeStrength(FiveOfAKind, groups[0].value)
		hv.PrimaryCards = groups[0].cards
		hv.HandDescription = "Five of a Kind, " + pluralValueName(intToValue(groups[0].value))

	case flush && straightHigh > 0:
		hv.Rank = StraightFlush
		hv.Strength = encodeStrength(StraightFlush, straightHigh)
		hv.PrimaryCards = sorted
		if straightHigh == 14 {
			hv.HandDescription = "Royal Flush"
		} else {
			hv.HandDescription = fmt.Sprintf("Straight Flush, %s high", valueName(intToValue(straightHigh)))
		}

	case len(groups[0].cards) == 4:
		kicker := groups[1].cards[0]
		hv.Rank = FourOfAKind
		hv.Strength = encodeStrength(FourOfAKind, groups[0].value, valueToInt(kicker.value))
		hv.PrimaryCards = groups[0].cards
		hv.Kickers = []Card{kicker}
		hv.HandDescription = "Four of a Kind, " + pluralValueName(intToValue(groups[0].value))

	case len(groups[0].cards) == 3 && len(groups[1].cards) == 2:
		hv.Rank = FullHouse
		hv.Strength = encodeStrength(FullHouse, groups[0].value, groups[1].value)
		hv.PrimaryCards = append(append([]Card{}, groups[0].cards...), groups[1].cards...)
		hv.HandDescription = fmt.Sprintf("Full House, %s over %s",
			pluralValueName(intToValue(groups[0].value)), pluralValueName(intToValue(groups[1].value)))

	case flush:
		hv.Rank = Flush
		hv.Strength = encodeStrength(Flush, cardValuesDesc(sorted)...)
		hv.PrimaryCards = sorted
		hv.HandDescription = fmt.Sprintf("Flush, %s high", valueName(sorted[0].value))

	case straightHigh > 0:
		hv.Rank = Straight
		hv.Strength = encodeStrength(Straight, straightHigh)
		hv.PrimaryCards = sorted
		hv.HandDescription = fmt.Sprintf("Straight, %s high", valueName(intToValue(straightHigh)))

	case len(groups[0].cards) == 3:
		kickers := flattenGroups(groups[1:])
		hv.Rank = ThreeOfAKind
		hv.Strength = encodeStrength(ThreeOfAKind,
			append([]int{groups[0].value}, cardValuesDesc(kickers)...)...)
		hv.PrimaryCards = groups[0].cards
		hv.Kickers = kickers
		hv.HandDescription = "Three of a Kind, " + pluralValueName(intToValue(groups[0].value))

	case len(groups[0].cards) == 2 && len(groups[1].cards) == 2:
		kicker := groups[2].cards[0]
		hv.Rank = TwoPair
		hv.Strength = encodeStrength(TwoPair, groups[0].value, groups[1].value, valueToInt(kicker.value))
		hv.PrimaryCards = append(append([]Card{}, groups[0].cards...), groups[1].cards...)
		hv.Kickers = []Card{kicker}
		hv.HandDescription = fmt.Sprintf("Two Pair, %s and %s",
			pluralValueName(intToValue(groups[0].value)), pluralValueName(intToValue(groups[1].value)))

	case len(groups[0].cards) == 2:
		kickers := flattenGroups(groups[1:])
		hv.Rank = Pair
		hv.Strength = encodeStrength(Pair,
			append([]int{groups[0].value}, cardValuesDesc(kickers)...)...)
		hv.PrimaryCards = groups[0].cards
		hv.Kickers = kickers
		hv.HandDescription = "Pair of " + pluralValueName(intToValue(groups[0].value))

	default:
		hv.Rank = HighCard
		hv.Strength = encodeStrength(HighCard, cardValuesDesc(sorted)...)
		hv.PrimaryCards = sorted[:1]
		hv.Kickers = sorted[1:]
		hv.HandDescription = fmt.Sprintf("High Card, %s", valueName(sorted[0].value))
	}

	return hv
}

// straightHighValue returns the high-card value of a straight formed by the
// five cards (sorted descending), or 0 when there is none. The wheel
// (A-2-3-4-5) counts as a five-high straight, not ace high.
func straightHighValue(sorted []Card) int {
	values := cardValuesDesc(sorted)

	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			return 0
		}
	}

	consecutive := true
	for i := 1; i < len(values); i++ {
		if values[i-1]-values[i] != 1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return values[0]
	}

	// Wheel: the Ace plays below the five.
	if values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		return 5
	}
	return 0
}

func cardValuesDesc(cards []Card) []int {
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = valueToInt(c.value)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values
}

func flattenGroups(groups []valueGroup) []Card {
	var out []Card
	for _, g := range groups {
		out = append(out, g.cards...)
	}
	sortCardsByValueDesc(out)
	return out
}

// generateCombinations generates all possible k-combinations from a slice of cards
func generateCombinations(cards []Card, k int) [][]Card {
	var combinations [][]Card

	if k > len(cards) || k <= 0 {
		return combinations
	}

	if k == len(cards) {
		return [][]Card{cards}
	}

	var generate func(start int, current []Card)
	generate = func(start int, current []Card) {
		if len(current) == k {
			combination := make([]Card, k)
			copy(combination, current)
			combinations = append(combinations, combination)
			return
		}

		for i := start; i <= len(cards)-(k-len(current)); i++ {
			generate(i+1, append(current, cards[i]))
		}
	}

	generate(0, []Card{})
	return combinations
}
