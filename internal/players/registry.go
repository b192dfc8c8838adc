package players

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"sync"

	"github.com/klimchuk/roadtripgame/internal/model"
)

// Player pairs a dog with the map session it plays on.
type Player struct {
	ID    uint64
	MapID string
	Dog   *model.Dog
}

type dogMapKey struct {
	dogID uint64
	mapID string
}

// Registry is the process-wide player/token store (§4.7). It never evicts
// entries: a player's token and dog stay valid for the lifetime of the
// process, matching the session layer's "never destroyed" invariant.
type Registry struct {
	mu sync.RWMutex

	byToken   map[string]*Player
	byDogMap  map[dogMapKey]*Player
	nextDogID uint64
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byToken:  make(map[string]*Player),
		byDogMap: make(map[dogMapKey]*Player),
	}
}

// AddPlayer mints a dog, a token, and a Player for the given map and
// registers it under both the token and the (dogID, mapID) pair. The
// caller is responsible for calling session.AddDog on the returned dog.
func (r *Registry) AddPlayer(name, mapID string) (token string, player *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextDogID
	r.nextDogID++
	dog := model.NewDog(id, name)

	player = &Player{ID: dog.ID, MapID: mapID, Dog: dog}
	token = r.generateToken()

	r.byToken[token] = player
	r.byDogMap[dogMapKey{dogID: dog.ID, mapID: mapID}] = player

	return token, player
}

// FindByToken resolves a bearer token to its player in O(1), or reports ok
// = false if the token is unknown.
func (r *Registry) FindByToken(token string) (player *Player, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok = r.byToken[token]
	return player, ok
}

// FindByDogAndMap resolves a (dogID, mapID) pair to its player, or reports
// ok = false if no such player exists.
func (r *Registry) FindByDogAndMap(dogID uint64, mapID string) (player *Player, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok = r.byDogMap[dogMapKey{dogID: dogID, mapID: mapID}]
	return player, ok
}

// generateToken produces a 32-hex-char token by concatenating the hex
// encodings of two 64-bit random integers, retrying until the combined
// length is exactly 32: small random values format to fewer than 16 hex
// digits, so a naive single attempt can come up short. Must be called
// with r.mu held.
func (r *Registry) generateToken() string {
	for {
		token := strconv.FormatUint(randomUint64(), 16) + strconv.FormatUint(randomUint64(), 16)
		if len(token) == 32 {
			if _, exists := r.byToken[token]; !exists {
				return token
			}
		}
	}
}

func randomUint64() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("players: reading random bytes: %v", err))
	}
	return binary.BigEndian.Uint64(b[:])
}
