// Package httpapi implements the §6 HTTP surface: the REST game API
// (routed with gorilla/mux, matching the teacher's api/server.go
// pattern) and static file serving for everything outside /api/.
// Every API handler runs its reads and writes of session state through
// internal/lane: joining, steering, ticking, and the players and state
// views. The map catalogue and the token lookup, which carry their own
// locks, are read directly. Static file requests bypass the lane entirely.
package httpapi
