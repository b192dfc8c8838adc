// Package model holds the simulation core: the immutable map description,
// the road graph derived from it, dogs and loot, the collision detector,
// the loot generator, and the per-map game session that ties them together
// on every tick.
//
// Nothing in this package talks HTTP; its only JSON is the wire shape of the
// map types (Road, Building, Office, LootType). It is driven entirely
// through Go method calls so it can be exercised directly from tests and
// from the single serialized lane in internal/lane.
package model
