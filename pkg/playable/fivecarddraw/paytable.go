package fivecarddraw

import (
	"casino-server/pkg/deck"
	"casino-server/pkg/poker"
)

// jacksOrBetter is the gross multiple of the bet paid for each hand
var jacksOrBetter = map[poker.Hand]int{
	poker.RoyalFlush:    250,
	poker.StraightFlush: 50,
	poker.FourOfAKind:   25,
	poker.FullHouse:     9,
	poker.Flush:         6,
	poker.Straight:      4,
	poker.ThreeOfAKind:  3,
	poker.TwoPair:       2,
	poker.OnePair:       1,
}

// PayTableEntry is a row of the pay table
type PayTableEntry struct {
	Hand       poker.Hand `json:"hand"`
	Multiplier int        `json:"multiplier"`
}

// PayTable returns the jacks-or-better pay table, best hand first
func PayTable() []PayTableEntry {
	entries := make([]PayTableEntry, 0, len(jacksOrBetter))
	for h := poker.RoyalFlush; h >= poker.OnePair; h-- {
		entries = append(entries, PayTableEntry{Hand: h, Multiplier: jacksOrBetter[h]})
	}

	return entries
}

// Multiplier returns the gross multiple of the bet paid for the result
// A single pair only pays when it is jacks or better
func Multiplier(r poker.Result) int {
	if r.Hand == poker.OnePair && r.TieBreakers[0] < deck.Jack {
		return 0
	}

	return jacksOrBetter[r.Hand]
}
