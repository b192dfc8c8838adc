package model

import (
	"math/rand/v2"
	"sort"
)

// GatherEvent describes one collision event resolved to its meaning: a dog
// either picked up a loot item or emptied its bag at an office.
type GatherEvent struct {
	DogID      uint64
	LootID     uint64 // only set when the event is a pickup
	LootType   int
	WasPickup  bool
	WasDeposit bool
}

// GameSession is a single map's live state: its road graph, the dogs
// currently on it, the loot scattered across it, and the loot generator's
// accumulator. It is grounded on original_source/src/model.cpp's
// GameSession, adapted from a fixed grid-square map to an arbitrary road
// graph and from a single hardcoded session to one-per-map.
type GameSession struct {
	mapRef *Map
	graph  *RoadGraph

	dogs    []*Dog
	dogRoad map[uint64]int // dog id -> index into graph.Roads()

	loot       map[uint64]Loot
	nextLootID uint64

	lootGen *LootGenerator

	randomSpawn bool
	rng         *rand.Rand
}

// NewGameSession builds a session for m, deriving its road graph once. When
// randomSpawn is true, new dogs are placed at a uniform-random point on a
// uniform-random road (§4.8); otherwise every dog starts at (0,0) on the
// map's starting road.
func NewGameSession(m *Map, period, probability float64, randomSpawn bool) *GameSession {
	return &GameSession{
		mapRef:      m,
		graph:       NewRoadGraph(m.Roads),
		dogRoad:     make(map[uint64]int),
		loot:        make(map[uint64]Loot),
		lootGen:     NewLootGenerator(period, probability),
		randomSpawn: randomSpawn,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Map returns the immutable map this session plays on.
func (s *GameSession) Map() *Map {
	return s.mapRef
}

// Dogs returns every dog currently in the session, in join order.
func (s *GameSession) Dogs() []*Dog {
	return s.dogs
}

// Loot returns every loot item currently on the map, keyed by id.
func (s *GameSession) Loot() map[uint64]Loot {
	return s.loot
}

// AddDog places dog on the session's road graph per §4.8 and registers it.
func (s *GameSession) AddDog(dog *Dog) {
	road := s.graph.StartingRoad()

	if s.randomSpawn && len(s.graph.Roads()) > 0 {
		idx := s.rng.IntN(len(s.graph.Roads()))
		r := s.graph.Roads()[idx]
		road = idx

		var x, y float64
		if r.IsHorizontal() {
			x = float64(r.Start.X + s.rng.IntN(r.End.X-r.Start.X+1))
			y = float64(r.Start.Y)
		} else {
			x = float64(r.Start.X)
			y = float64(r.Start.Y + s.rng.IntN(r.End.Y-r.Start.Y+1))
		}
		dog.Position = Position{X: x, Y: y}
	} else if road >= 0 {
		r := s.graph.Roads()[road]
		dog.Position = Position{X: float64(r.Start.X), Y: float64(r.Start.Y)}
	}

	s.dogs = append(s.dogs, dog)
	if road < 0 {
		road = 0
	}
	s.dogRoad[dog.ID] = road
}

// generateLoot runs §4.1/§4.9 item 5: ask the generator how many items are
// due, then scatter each uniformly over a random road's endpoint range.
func (s *GameSession) generateLoot(dt float64) {
	if s.mapRef.NumLootTypes() == 0 || len(s.graph.Roads()) == 0 {
		return
	}

	n := s.lootGen.Generate(dt, len(s.loot), len(s.dogs))
	for i := 0; i < n; i++ {
		typ := s.rng.IntN(s.mapRef.NumLootTypes())

		road := s.graph.Roads()[s.rng.IntN(len(s.graph.Roads()))]
		var x, y float64
		if road.IsHorizontal() {
			x = float64(road.Start.X + s.rng.IntN(road.End.X-road.Start.X+1))
			y = float64(road.Start.Y)
		} else {
			x = float64(road.Start.X)
			y = float64(road.Start.Y + s.rng.IntN(road.End.Y-road.Start.Y+1))
		}

		id := s.nextLootID
		s.nextLootID++
		s.loot[id] = Loot{Type: typ, Position: Position{X: x, Y: y}}
	}
}

// SetTimeShift advances the session by dt seconds (§4.6): every dog moves
// along the road graph, collisions between the dogs' sweeps, the loot on
// the map and the map's offices are resolved in ratio order, and new loot
// is generated for the next tick.
func (s *GameSession) SetTimeShift(dt float64) []GatherEvent {
	gatherers := make([]Gatherer, len(s.dogs))
	for i, dog := range s.dogs {
		start := dog.Position
		s.dogRoad[dog.ID] = moveDog(s.graph, dog, s.dogRoad[dog.ID], dt)
		gatherers[i] = Gatherer{Start: start, End: dog.Position, Radius: dogRadius}
	}

	items := make([]CollisionItem, 0, len(s.mapRef.Offices)+len(s.loot))
	for _, office := range s.mapRef.Offices {
		items = append(items, CollisionItem{
			Position: Position{X: float64(office.Position.X), Y: float64(office.Position.Y)},
			Radius:   officeRadius,
		})
	}

	lootIDs := make([]uint64, 0, len(s.loot))
	for id := range s.loot {
		lootIDs = append(lootIDs, id)
	}
	// Stable order so ties resolve deterministically across runs with the
	// same loot set; map iteration order is not otherwise guaranteed.
	sort.Slice(lootIDs, func(i, j int) bool { return lootIDs[i] < lootIDs[j] })
	for _, id := range lootIDs {
		loot := s.loot[id]
		items = append(items, CollisionItem{Position: loot.Position, Radius: 0})
	}

	numOffices := len(s.mapRef.Offices)
	events := DetectCollisions(items, gatherers)

	var results []GatherEvent
	for _, ev := range events {
		dog := s.dogs[ev.GathererID]

		if ev.ItemID < numOffices {
			if len(dog.Bag) == 0 {
				continue
			}
			for _, item := range dog.Bag {
				dog.Score += s.mapRef.LootTypeValue(item.Type)
			}
			dog.EmptyBag()
			results = append(results, GatherEvent{DogID: dog.ID, WasDeposit: true})
			continue
		}

		lootID := lootIDs[ev.ItemID-numOffices]
		loot, ok := s.loot[lootID]
		if !ok {
			continue // another dog already picked it up this tick
		}
		// Bag capacity is declared on the map but not enforced at pickup
		// time: see the Open Question decision in DESIGN.md.
		dog.AddToBag(lootID, loot.Type)
		delete(s.loot, lootID)
		results = append(results, GatherEvent{DogID: dog.ID, LootID: lootID, LootType: loot.Type, WasPickup: true})
	}

	s.generateLoot(dt)

	return results
}
