package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_HasCard(t *testing.T) {
	hand := Hand(CardsFromString("2c,3c,4d"))
	assert.True(t, hand.HasCard(CardFromString("3c")))
	assert.False(t, hand.HasCard(CardFromString("3s")))
}

func TestHand_AddCard(t *testing.T) {
	a := assert.New(t)
	h := Hand{}
	h2 := h.AddCard(CardFromString("14s"))
	h3 := h2.AddCard(CardFromString("3c"))
	a.Equal("14s,3c", CardsToString(h3))
	a.Equal("14s", CardsToString(h2))
	a.Empty(h)
}

func TestHand_FirstLast(t *testing.T) {
	a := assert.New(t)

	_, ok := Hand{}.FirstCard()
	a.False(ok)

	h := Hand(CardsFromString("2c,3c,4d"))
	c, ok := h.FirstCard()
	a.True(ok)
	a.Equal(CardFromString("2c"), c)

	c, ok = h.LastCard()
	a.True(ok)
	a.Equal(CardFromString("4d"), c)
}
