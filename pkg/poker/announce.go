package poker

import (
	"fmt"
	"sort"
	"strings"
)

// WinnerAnnouncement is the externally consumed settlement payload: who won
// what, with which hand, and whether the hand ended uncontested.
type WinnerAnnouncement struct {
	GameID     string
	HandNumber int
	Winners    []WinnerDetermination
	FoldWin    bool
	Text       string
}

// BuildWinnerAnnouncement packages settlement results into the payload the
// persistence and notification collaborators consume. It is a view over
// already-settled results and introduces no new state.
func (c *ShowdownContext) BuildWinnerAnnouncement(results []WinnerDetermination) WinnerAnnouncement {
	ann := WinnerAnnouncement{
		GameID:     c.cfg.GameID,
		HandNumber: c.cfg.HandNumber,
		Winners:    results,
		FoldWin:    c.isFoldWin(results),
	}

	var parts []string
	for _, w := range results {
		p := c.byName[w.PlayerName]
		switch {
		case w.Hand != nil && w.PoolName != "":
			parts = append(parts, fmt.Sprintf("%s wins %d (%s) with %s",
				w.PlayerName, w.AmountWon, w.PoolName, w.Hand.HandDescription))
		case w.Hand != nil:
			parts = append(parts, fmt.Sprintf("%s wins %d with %s",
				w.PlayerName, w.AmountWon, w.Hand.HandDescription))
		case p != nil && p.Status != StatusShown && p.Status != StatusForcedReveal:
			parts = append(parts, fmt.Sprintf("%s wins %d uncontested", w.PlayerName, w.AmountWon))
		default:
			parts = append(parts, fmt.Sprintf("%s wins %d", w.PlayerName, w.AmountWon))
		}
	}
	ann.Text = strings.Join(parts, "; ")
	return ann
}

// isFoldWin reports whether no winning player had to show a hand.
func (c *ShowdownContext) isFoldWin(results []WinnerDetermination) bool {
	if len(results) == 0 {
		return false
	}
	for _, w := range results {
		p := c.byName[w.PlayerName]
		if p == nil {
			return false
		}
		if p.Status == StatusShown || p.Status == StatusForcedReveal {
			return false
		}
	}
	return true
}

// AnimationStepKind tags one step of the reveal animation sequence.
type AnimationStepKind string

const (
	AnimationReveal AnimationStepKind = "reveal"
	AnimationMuck   AnimationStepKind = "muck"
	AnimationAward  AnimationStepKind = "award"
)

// AnimationStep is one step of the progressive showdown animation the UI
// collaborator plays back.
type AnimationStep struct {
	Kind            AnimationStepKind
	Player          string
	Cards           []Card
	HandDescription string
	PotIndex        int
	Amount          int64
	Pool            string
}

// BuildAnimationSequence lays out the showdown playback: reveals in the order
// they happened, then mucks, then pot awards.
func (c *ShowdownContext) BuildAnimationSequence(results []WinnerDetermination) []AnimationStep {
	var steps []AnimationStep

	revealed := make([]*ShowdownPlayer, 0, len(c.orders))
	for _, p := range c.orders {
		if p.Status == StatusShown || p.Status == StatusForcedReveal {
			revealed = append(revealed, p)
		}
	}
	sort.Slice(revealed, func(i, j int) bool {
		return revealed[i].RevealOrder < revealed[j].RevealOrder
	})
	for _, p := range revealed {
		step := AnimationStep{
			Kind:   AnimationReveal,
			Player: p.Name,
			Cards:  p.HoleCards,
		}
		if p.Hand != nil {
			step.HandDescription = p.Hand.HandDescription
			step.Cards = p.Hand.BestHand
		}
		steps = append(steps, step)
	}

	for _, p := range c.orders {
		if p.Status == StatusMucked {
			steps = append(steps, AnimationStep{Kind: AnimationMuck, Player: p.Name})
		}
	}

	for _, w := range results {
		steps = append(steps, AnimationStep{
			Kind:     AnimationAward,
			Player:   w.PlayerName,
			Amount:   w.AmountWon,
			PotIndex: w.PotIndex,
			Pool:     w.PoolName,
		})
	}

	return steps
}
