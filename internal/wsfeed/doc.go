// Package wsfeed provides a read-only WebSocket spectator feed: clients
// connect to a single map and receive the full game state as JSON after
// every self-driven tick (the server's --tick-period timer). Ticks driven
// through POST /api/v1/game/tick are not broadcast.
//
// Grounded on the teacher's transport/websocket package (hub.go): the
// same hub-and-spoke design (a central Hub owning a register/unregister/
// broadcast channel trio, one goroutine pair per client for read/write
// pumping, ping/pong keepalive), generalized from a single engine session
// to per-mapID spectator groups and from engine.GameState to the road-trip
// Game's own state snapshot. Unlike the teacher's hub, this feed never
// reads application messages from clients — it is spectate-only — so
// readPump exists solely to drive the close handshake and detect
// disconnects.
package wsfeed
