package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klimchuk/roadtripgame/internal/model"
	"github.com/klimchuk/roadtripgame/internal/players"
)

// DefaultDogSpeed and DefaultBagCapacity are the fallbacks a map config
// entry inherits when it does not declare its own (§3, §6).
const (
	DefaultDogSpeed    = 1.0
	DefaultBagCapacity = 3
)

var (
	// ErrMapAlreadyExists is returned by AddMap for a duplicate map id.
	ErrMapAlreadyExists = errors.New("game: map with this id already exists")
	// ErrMapNotFound is returned when a request names an unknown map id.
	ErrMapNotFound = errors.New("game: map not found")
	// ErrInvalidTimeShift is returned by SetTimeShift for a non-positive dt.
	ErrInvalidTimeShift = errors.New("game: time shift must be > 0")
)

// LootGeneratorConfig mirrors the config document's lootGeneratorConfig
// object: a period (seconds) and an issue probability in [0,1].
type LootGeneratorConfig struct {
	Period      float64
	Probability float64
}

// Game is the process-wide root (§4.9): the map catalogue, one
// lazily-created GameSession per map that has ever had a player join it,
// and the player/token registry. The map catalogue and session table are
// guarded by a mutex, but the sessions themselves are not: AddPlayer and
// SetTimeShift must not run concurrently with each other or with reads of
// session state. Every such call arrives serialized through internal/lane.
type Game struct {
	mu sync.RWMutex

	maps     map[string]*model.Map
	mapOrder []string

	sessions map[string]*model.GameSession

	players *players.Registry

	defaultDogSpeed    float64
	defaultBagCapacity uint
	lootConfig         LootGeneratorConfig
	randomSpawn        bool
}

// New builds an empty Game with the given defaults and loot-generator
// config; randomSpawn controls §4.8's spawn placement rule for every
// session it creates.
func New(lootConfig LootGeneratorConfig, randomSpawn bool) *Game {
	return &Game{
		maps:               make(map[string]*model.Map),
		sessions:           make(map[string]*model.GameSession),
		players:            players.NewRegistry(),
		defaultDogSpeed:    DefaultDogSpeed,
		defaultBagCapacity: DefaultBagCapacity,
		lootConfig:         lootConfig,
		randomSpawn:        randomSpawn,
	}
}

// SetDefaults overrides the default dog speed and bag capacity maps fall
// back to when they don't declare their own (§6's defaultDogSpeed /
// defaultBagCapacity).
func (g *Game) SetDefaults(dogSpeed float64, bagCapacity uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.defaultDogSpeed = dogSpeed
	g.defaultBagCapacity = bagCapacity
}

// AddMap registers m under its id, which must be unique.
func (g *Game) AddMap(m *model.Map) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.maps[m.ID]; exists {
		return fmt.Errorf("%w: %q", ErrMapAlreadyExists, m.ID)
	}
	if m.DogSpeed == 0 {
		m.DogSpeed = g.defaultDogSpeed
	}
	if m.BagCapacity == 0 {
		m.BagCapacity = g.defaultBagCapacity
	}

	g.maps[m.ID] = m
	g.mapOrder = append(g.mapOrder, m.ID)
	return nil
}

// Maps returns every registered map, in the order they were added.
func (g *Game) Maps() []*model.Map {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*model.Map, len(g.mapOrder))
	for i, id := range g.mapOrder {
		out[i] = g.maps[id]
	}
	return out
}

// FindMap looks up a map by id.
func (g *Game) FindMap(id string) (*model.Map, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.maps[id]
	return m, ok
}

// sessionForMapLocked returns the session for mapID, creating it (and its
// underlying map lookup) on first use. Callers must hold g.mu.
func (g *Game) sessionForMapLocked(mapID string) (*model.GameSession, error) {
	if s, ok := g.sessions[mapID]; ok {
		return s, nil
	}

	m, ok := g.maps[mapID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMapNotFound, mapID)
	}

	s := model.NewGameSession(m, g.lootConfig.Period, g.lootConfig.Probability, g.randomSpawn)
	g.sessions[mapID] = s
	return s, nil
}

// SessionForMap returns the live session for mapID, if one has been
// created (i.e. at least one player has joined that map).
func (g *Game) SessionForMap(mapID string) (*model.GameSession, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, ok := g.sessions[mapID]
	return s, ok
}

// AddPlayer implements §4.7/§4.9: mint a player and dog for mapID, lazily
// creating that map's session on first use, and place the dog on the road
// graph per §4.8. Returns ok = false if mapID is unknown.
func (g *Game) AddPlayer(name, mapID string) (token string, playerID uint64, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := g.sessionForMapLocked(mapID)
	if err != nil {
		return "", 0, false
	}

	token, player := g.players.AddPlayer(name, mapID)
	session.AddDog(player.Dog)

	return token, player.ID, true
}

// FindPlayerByToken resolves a bearer token to its player.
func (g *Game) FindPlayerByToken(token string) (*players.Player, bool) {
	return g.players.FindByToken(token)
}

// SetTimeShift advances every live session by dt seconds (§4.9); dt must
// be > 0.
func (g *Game) SetTimeShift(dt float64) error {
	if dt <= 0 {
		return ErrInvalidTimeShift
	}

	g.mu.RLock()
	sessions := make([]*model.GameSession, 0, len(g.sessions))
	for _, s := range g.sessions {
		sessions = append(sessions, s)
	}
	g.mu.RUnlock()

	for _, s := range sessions {
		s.SetTimeShift(dt)
	}
	return nil
}
