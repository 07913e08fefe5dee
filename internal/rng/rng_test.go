package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSeeded(t *testing.T) {
	a := assert.New(t)

	g1 := NewSeeded(42)
	g2 := NewSeeded(42)
	for i := 0; i < 100; i++ {
		a.Equal(g1.Intn(52), g2.Intn(52))
	}
}

func TestSequence_Intn(t *testing.T) {
	a := assert.New(t)

	s := &Sequence{Values: []int{3, 7, -1}}
	a.Equal(3, s.Intn(6))
	a.Equal(1, s.Intn(6))
	a.Equal(5, s.Intn(6))
	a.Equal(3, s.Intn(6), "wraps around")

	empty := &Sequence{}
	a.Equal(0, empty.Intn(10))
}
