package poker

// HiLoResult packages a high and a low evaluation of the same cards for
// hi/lo split variants. It carries no pot logic; settlement consumes the two
// evaluations through independent winner sets per pot.
type HiLoResult struct {
	High HandValue
	Low  HandValue
}

// HasLow reports whether the low half qualifies.
func (r HiLoResult) HasLow() bool {
	return r.Low.Strength > 0
}

// EvaluateHiLo evaluates both halves of a hi/lo hand. The low half uses the
// eight-or-better qualifier, the common rule for hi/lo split games.
func EvaluateHiLo(cards []Card, wilds []Card) HiLoResult {
	return HiLoResult{
		High: EvaluateWithWilds(cards, wilds),
		Low:  EvaluateLow(cards, wilds, true),
	}
}

// HiLoComparison is the result of comparing two hi/lo hands, one comparison
// per pool. Each value follows the CompareHands convention.
type HiLoComparison struct {
	HighComparison int
	LowComparison  int
}

// CompareHiLo compares two hi/lo results pool by pool.
func CompareHiLo(handA, handB HiLoResult) HiLoComparison {
	return HiLoComparison{
		HighComparison: CompareHands(handA.High, handB.High),
		LowComparison:  CompareLows(handA.Low, handB.Low),
	}
}

// Scoops reports whether hand A takes both pools: it wins the high and is not
// beaten for the low (winning it outright or facing no qualifying low).
func (c HiLoComparison) Scoops() bool {
	return c.HighComparison > 0 && c.LowComparison >= 0
}

// WinsHighOnly reports whether hand A wins the high pool but loses the low.
func (c HiLoComparison) WinsHighOnly() bool {
	return c.HighComparison > 0 && c.LowComparison < 0
}

// WinsLowOnly reports whether hand A wins the low pool but loses the high.
func (c HiLoComparison) WinsLowOnly() bool {
	return c.HighComparison < 0 && c.LowComparison > 0
}

// SplitsBoth reports whether the two hands tie in both pools.
func (c HiLoComparison) SplitsBoth() bool {
	return c.HighComparison == 0 && c.LowComparison == 0
}
