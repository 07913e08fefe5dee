package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"casino-server/internal/rng"
)

// Size is the number of cards in a standard deck
const Size = 52

// ErrEmptyDeck is an error when Draw() is attempted and there are no more cards
var ErrEmptyDeck = errors.New("no cards left in the deck")

// Deck is a fixed arena of 52 cards and a cursor.
// Cards before the cursor have been dealt, cards at or after it make up the draw pile.
// Deck is a value type: copying a Deck copies its draw pile.
type Deck struct {
	cards  [Size]Card
	cursor int
}

// New returns a new deck of cards in standard order (suit-major, then rank).
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() Deck {
	var d Deck
	i := 0
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			d.cards[i] = Card{Rank: rank, Suit: suit}
			i++
		}
	}

	return d
}

// Stack returns a deck where the provided cards are drawn first, in order, followed
// by the remaining cards in standard order. Duplicate or invalid cards cause a panic.
func Stack(top ...Card) Deck {
	if len(top) > Size {
		panic("too many cards to stack")
	}

	seen := make(map[Card]bool, len(top))
	var d Deck
	for i, card := range top {
		if !card.IsValid() {
			panic("cannot stack an invalid card: " + CardToString(card))
		}

		if seen[card] {
			panic("cannot stack a duplicate card: " + card.String())
		}

		seen[card] = true
		d.cards[i] = card
	}

	i := len(top)
	std := New()
	for _, card := range std.cards {
		if !seen[card] {
			d.cards[i] = card
			i++
		}
	}

	return d
}

// Shuffle returns a permutation of every card in the deck, dealt ones included, with the cursor reset.
// The shuffle is a Fisher-Yates shuffle driven by g, so a seeded generator produces a repeatable order.
func (d Deck) Shuffle(g rng.Generator) Deck {
	shuffled := Deck{cards: d.cards}
	for j := Size - 1; j > 0; j-- {
		i := g.Intn(j + 1)
		shuffled.cards[i], shuffled.cards[j] = shuffled.cards[j], shuffled.cards[i]
	}

	return shuffled
}

// Draw will draw the next card
// If there are no more cards, an ErrEmptyDeck is returned along with a zero card.
func (d *Deck) Draw() (Card, error) {
	if d.cursor >= Size {
		return Card{}, ErrEmptyDeck
	}

	card := d.cards[d.cursor]
	d.cursor++

	return card, nil
}

// DrawN draws n cards. No cards are drawn if fewer than n remain.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if !d.CanDraw(n) {
		return nil, ErrEmptyDeck
	}

	cards := make([]Card, n)
	copy(cards, d.cards[d.cursor:d.cursor+n])
	d.cursor += n

	return cards, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d Deck) CanDraw(want int) bool {
	return Size-d.cursor >= want
}

// CardsLeft returns the number of cards left in the deck
func (d Deck) CardsLeft() int {
	return Size - d.cursor
}

// Dealt returns a copy of the cards that have been drawn
func (d Deck) Dealt() []Card {
	cards := make([]Card, d.cursor)
	copy(cards, d.cards[:d.cursor])
	return cards
}

// Remaining returns a copy of the draw pile, next card first
func (d Deck) Remaining() []Card {
	cards := make([]Card, Size-d.cursor)
	copy(cards, d.cards[d.cursor:])
	return cards
}

// HashCode returns a SHA1 hash code of the full deck order.
func (d Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
