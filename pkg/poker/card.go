package poker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists all four suits in a stable order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Value represents a card value
type Value string

const (
	Ace   Value = "A"
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
)

// Values lists all thirteen values from low to high (Ace last).
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Card represents a playing card. Cards are immutable values; copy freely.
type Card struct {
	suit  Suit
	value Value
}

// NewCard creates a card with the given suit and value.
func NewCard(suit Suit, value Value) Card {
	return Card{suit: suit, value: value}
}

// CardJSON represents a card for JSON serialization
type CardJSON struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

// MarshalJSON implements json.Marshaler interface for Card
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(CardJSON{
		Suit:  string(c.suit),
		Value: string(c.value),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface for Card
func (c *Card) UnmarshalJSON(data []byte) error {
	var cardJSON CardJSON
	if err := json.Unmarshal(data, &cardJSON); err != nil {
		return err
	}

	suit, err := parseSuit(cardJSON.Suit)
	if err != nil {
		return err
	}
	value, err := parseValue(cardJSON.Value)
	if err != nil {
		return err
	}

	c.suit = suit
	c.value = value
	return nil
}

func parseSuit(s string) (Suit, error) {
	switch s {
	case "♠", "s", "S", "spades", "Spades":
		return Spades, nil
	case "♥", "h", "H", "hearts", "Hearts":
		return Hearts, nil
	case "♦", "d", "D", "diamonds", "Diamonds":
		return Diamonds, nil
	case "♣", "c", "C", "clubs", "Clubs":
		return Clubs, nil
	default:
		return "", fmt.Errorf("invalid suit: %s", s)
	}
}

func parseValue(v string) (Value, error) {
	switch v {
	case "A", "a", "ace", "Ace":
		return Ace, nil
	case "K", "k", "king", "King":
		return King, nil
	case "Q", "q", "queen", "Queen":
		return Queen, nil
	case "J", "j", "jack", "Jack":
		return Jack, nil
	case "10", "T", "t", "ten", "Ten":
		return Ten, nil
	case "9", "nine", "Nine":
		return Nine, nil
	case "8", "eight", "Eight":
		return Eight, nil
	case "7", "seven", "Seven":
		return Seven, nil
	case "6", "six", "Six":
		return Six, nil
	case "5", "five", "Five":
		return Five, nil
	case "4", "four", "Four":
		return Four, nil
	case "3", "three", "Three":
		return Three, nil
	case "2", "two", "Two":
		return Two, nil
	default:
		return "", fmt.Errorf("invalid value: %s", v)
	}
}

// ParseCard parses a compact card string such as "As", "Td" or "10♦".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card: %q", s)
	}

	// The suit is always the trailing rune; everything before it is the value.
	runes := []rune(s)
	suitStr := string(runes[len(runes)-1])
	valueStr := string(runes[:len(runes)-1])

	suit, err := parseSuit(suitStr)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %v", s, err)
	}
	value, err := parseValue(valueStr)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %v", s, err)
	}
	return Card{suit: suit, value: value}, nil
}

// ParseCards parses a whitespace or comma separated list of card strings.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// String returns a string representation of the card
func (c Card) String() string {
	return string(c.value) + string(c.suit)
}

// GetSuit returns the card's suit
func (c Card) GetSuit() string {
	return string(c.suit)
}

// GetValue returns the card's value
func (c Card) GetValue() string {
	return string(c.value)
}

// Equal reports whether two cards have the same suit and value.
func (c Card) Equal(other Card) bool {
	return c.suit == other.suit && c.value == other.value
}

// valueToInt converts a card Value to its integer representation (Ace high)
func valueToInt(value Value) int {
	switch value {
	case Ace:
		return 14
	case King:
		return 13
	case Queen:
		return 12
	case Jack:
		return 11
	case Ten:
		return 10
	case Nine:
		return 9
	case Eight:
		return 8
	case Seven:
		return 7
	case Six:
		return 6
	case Five:
		return 5
	case Four:
		return 4
	case Three:
		return 3
	case Two:
		return 2
	default:
		return 0
	}
}

// intToValue converts an integer to its card Value representation
func intToValue(value int) Value {
	switch value {
	case 14:
		return Ace
	case 13:
		return King
	case 12:
		return Queen
	case 11:
		return Jack
	case 10:
		return Ten
	case 9:
		return Nine
	case 8:
		return Eight
	case 7:
		return Seven
	case 6:
		return Six
	case 5:
		return Five
	case 4:
		return Four
	case 3:
		return Three
	case 2:
		return Two
	default:
		return ""
	}
}

// lowValueToInt converts a card Value to its ace-to-five low representation,
// where the Ace counts as 1.
func lowValueToInt(value Value) int {
	if value == Ace {
		return 1
	}
	return valueToInt(value)
}

// lowIntToValue is the inverse of lowValueToInt.
func lowIntToValue(value int) Value {
	if value == 1 {
		return Ace
	}
	return intToValue(value)
}

// valueName returns the spoken name of a value ("Ace", "Ten", ...).
func valueName(value Value) string {
	switch value {
	case Ace:
		return "Ace"
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Jack:
		return "Jack"
	case Ten:
		return "Ten"
	case Nine:
		return "Nine"
	case Eight:
		return "Eight"
	case Seven:
		return "Seven"
	case Six:
		return "Six"
	case Five:
		return "Five"
	case Four:
		return "Four"
	case Three:
		return "Three"
	case Two:
		return "Two"
	default:
		return "Unknown"
	}
}

// pluralValueName returns the plural spoken name of a value ("Aces", "Sixes").
func pluralValueName(value Value) string {
	if value == Six {
		return "Sixes"
	}
	return valueName(value) + "s"
}

// removeCard removes a single occurrence of card from cards, returning the
// shortened slice and whether a match was found.
func removeCard(cards []Card, card Card) ([]Card, bool) {
	for i, c := range cards {
		if c.Equal(card) {
			out := make([]Card, 0, len(cards)-1)
			out = append(out, cards[:i]...)
			out = append(out, cards[i+1:]...)
			return out, true
		}
	}
	return cards, false
}

// sortCardsByValueDesc sorts cards highest value first, in place.
func sortCardsByValueDesc(cards []Card) {
	for i := 1; i < len(cards); i++ {
		c := cards[i]
		j := i - 1
		for j >= 0 && valueToInt(cards[j].value) < valueToInt(c.value) {
			cards[j+1] = cards[j]
			j--
		}
		cards[j+1] = c
	}
}
