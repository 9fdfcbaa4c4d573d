package poker

import (
	"math/rand"
)

// Deck represents a deck of cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a shuffled 52-card deck using the given random number
// generator.
func NewDeck(rng *rand.Rand) *Deck {
	deck := &Deck{
		cards: FullDeck(),
		rng:   rng,
	}
	deck.Shuffle()
	return deck
}

// FullDeck returns all 52 cards in a stable suit-then-value order.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, value := range Values {
			cards = append(cards, Card{suit: suit, value: value})
		}
	}
	return cards
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DrawN draws n cards, or fewer if the deck runs out.
func (d *Deck) DrawN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out
}

// Remove takes the named cards out of the deck wherever they sit, so known
// holdings can be excluded before drawing.
func (d *Deck) Remove(cards ...Card) {
	for _, c := range cards {
		d.cards, _ = removeCard(d.cards, c)
	}
}

// Size returns the number of cards remaining in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}
