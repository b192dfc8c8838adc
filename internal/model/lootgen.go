package model

import "math"

// LootGenerator implements §4.1: it accumulates elapsed time and, once a
// session is short of loot relative to its looters, issues items at a rate
// that converges on probability·(needed/period) as time passes.
type LootGenerator struct {
	period      float64 // seconds
	probability float64 // in [0,1]
	accumulated float64 // seconds since the last issue
}

// NewLootGenerator builds a generator for the given period (seconds) and
// per-period probability.
func NewLootGenerator(period, probability float64) *LootGenerator {
	return &LootGenerator{period: period, probability: probability}
}

// Generate advances the accumulator by delta seconds and returns how many
// loot items should be created this tick, never more than
// max(0, currentLooters-currentLoot).
func (g *LootGenerator) Generate(delta float64, currentLoot, currentLooters int) int {
	g.accumulated += delta

	shortage := currentLooters - currentLoot
	if shortage <= 0 {
		return 0
	}

	ratio := g.accumulated / g.period
	if ratio > 1 {
		ratio = 1
	}

	generated := int(math.Floor(float64(shortage) * ratio * g.probability))
	if generated == 0 {
		return 0
	}
	g.accumulated = 0

	if generated > shortage {
		generated = shortage
	}
	return generated
}
