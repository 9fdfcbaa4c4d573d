package poker

// ShowOrder selects the reveal-order policy for a showdown.
type ShowOrder int

const (
	// ShowOrderLastAggressor has the last aggressor reveal first, then
	// proceeds clockwise from that seat.
	ShowOrderLastAggressor ShowOrder = iota
	ShowOrderClockwiseFromButton
	ShowOrderCounterClockwiseFromButton
	// ShowOrderSimultaneous enforces no order; any pending player may act.
	ShowOrderSimultaneous
)

// String returns a human-readable name for the show order.
func (o ShowOrder) String() string {
	switch o {
	case ShowOrderLastAggressor:
		return "last_aggressor"
	case ShowOrderClockwiseFromButton:
		return "clockwise_from_button"
	case ShowOrderCounterClockwiseFromButton:
		return "counter_clockwise_from_button"
	case ShowOrderSimultaneous:
		return "simultaneous"
	default:
		return "unknown"
	}
}

// revealOrderFn returns the next player expected to act, or nil when nobody
// is pending. One function per ordering policy keeps each algorithm isolated
// and independently testable.
type revealOrderFn func(c *ShowdownContext) *ShowdownPlayer

func revealOrderPolicy(order ShowOrder) revealOrderFn {
	switch order {
	case ShowOrderClockwiseFromButton:
		return nextClockwiseFromButton
	case ShowOrderCounterClockwiseFromButton:
		return nextCounterClockwiseFromButton
	case ShowOrderSimultaneous:
		return nextAnyPending
	default:
		return nextFromLastAggressor
	}
}

// nextFromLastAggressor starts with the last aggressor, then proceeds
// clockwise from the last player who acted.
func nextFromLastAggressor(c *ShowdownContext) *ShowdownPlayer {
	if c.lastActedSeat < 0 {
		if agg := c.byName[c.cfg.LastAggressor]; agg != nil {
			if agg.Status == StatusPending {
				return agg
			}
			return scanClockwise(c, c.seatIndexOf(agg))
		}
		return scanClockwise(c, c.cfg.DealerPosition)
	}
	return scanClockwise(c, c.lastActedSeat)
}

func nextClockwiseFromButton(c *ShowdownContext) *ShowdownPlayer {
	start := c.lastActedSeat
	if start < 0 {
		start = c.cfg.DealerPosition
	}
	return scanClockwise(c, start)
}

func nextCounterClockwiseFromButton(c *ShowdownContext) *ShowdownPlayer {
	start := c.lastActedSeat
	if start < 0 {
		start = c.cfg.DealerPosition
	}
	return scanCounterClockwise(c, start)
}

// nextAnyPending suggests the first pending player in seat order; with
// simultaneous reveals the suggestion is not enforced.
func nextAnyPending(c *ShowdownContext) *ShowdownPlayer {
	for _, p := range c.orders {
		if p.Status == StatusPending {
			return p
		}
	}
	return nil
}

// scanClockwise finds the next pending player after seat index from, wrapping
// around the full seat list.
func scanClockwise(c *ShowdownContext, from int) *ShowdownPlayer {
	n := len(c.orders)
	for i := 1; i <= n; i++ {
		p := c.orders[(from+i)%n]
		if p.Status == StatusPending {
			return p
		}
	}
	return nil
}

func scanCounterClockwise(c *ShowdownContext, from int) *ShowdownPlayer {
	n := len(c.orders)
	for i := 1; i <= n; i++ {
		p := c.orders[((from-i)%n+n)%n]
		if p.Status == StatusPending {
			return p
		}
	}
	return nil
}
