// Package game wires model.GameSession and players.Registry together into
// the Game root described in §4.9: the map catalogue, one lazily-created
// session per map, and the process-wide player registry.
package game
