// Package lane implements the single serialized execution lane described
// in §4.10 / §5: every API handler that touches the Game, and every
// timer-driven tick, runs one at a time in enqueue order. It is the Go
// equivalent of the original C++ server's boost::asio::strand
// (main.cpp's api_strand) — a single logical queue instead of a
// thread-confinement primitive, since Go has no analogous "run only on
// this strand" guarantee to lean on.
package lane
