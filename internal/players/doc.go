// Package players implements the token registry (§4.7): issuing a dog and
// an opaque bearer token to a newly joined player, and resolving a token
// back to its player in O(1).
package players
