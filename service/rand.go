package service

import (
	"math/rand"
)

// Rand is the single source of randomness for reward rolls and game
// outcomes. Injecting it keeps every probability draw deterministic in
// tests: given a fixed roll sequence the outcome logic is pure.
type Rand interface {
	// Float64 returns a uniform draw in [0, 1)
	Float64() float64

	// Intn returns a uniform draw in [0, n)
	Intn(n int) int
}

type mathRand struct{}

func (mathRand) Float64() float64 { return rand.Float64() }
func (mathRand) Intn(n int) int   { return rand.Intn(n) }

// NewRand returns the production randomness source backed by math/rand
func NewRand() Rand {
	return mathRand{}
}
