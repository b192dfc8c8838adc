package wsfeed

import (
	"strconv"

	"github.com/klimchuk/roadtripgame/internal/model"
)

// BagItem mirrors one entry of a dog's backpack in the wire snapshot.
type BagItem struct {
	ID   uint64 `json:"id"`
	Type int    `json:"type"`
}

// DogState is one player's position, heading, backpack and score.
type DogState struct {
	Position [2]float64 `json:"pos"`
	Speed    [2]float64 `json:"speed"`
	Dir      string     `json:"dir"`
	Bag      []BagItem  `json:"bag"`
	Score    uint64     `json:"score"`
}

// LootState is one piece of loot still lying on the road network.
type LootState struct {
	Type     int        `json:"type"`
	Position [2]float64 `json:"pos"`
}

// Snapshot is the full state of one map's session, broadcast verbatim to
// every spectator connected to that map.
type Snapshot struct {
	MapID       string               `json:"mapId"`
	Players     map[string]DogState  `json:"players"`
	LostObjects map[string]LootState `json:"lostObjects"`
}

// BuildSnapshot renders session's current state into wire shape.
func BuildSnapshot(mapID string, session *model.GameSession) Snapshot {
	snap := Snapshot{
		MapID:       mapID,
		Players:     make(map[string]DogState),
		LostObjects: make(map[string]LootState),
	}

	for _, dog := range session.Dogs() {
		bag := make([]BagItem, len(dog.Bag))
		for i, item := range dog.Bag {
			bag[i] = BagItem{ID: item.LootID, Type: item.Type}
		}
		snap.Players[strconv.FormatUint(dog.ID, 10)] = DogState{
			Position: [2]float64{dog.Position.X, dog.Position.Y},
			Speed:    [2]float64{dog.Velocity.Horizontal, dog.Velocity.Vertical},
			Dir:      string(dog.Direction),
			Bag:      bag,
			Score:    dog.Score,
		}
	}

	for id, loot := range session.Loot() {
		snap.LostObjects[strconv.FormatUint(id, 10)] = LootState{
			Type:     loot.Type,
			Position: [2]float64{loot.Position.X, loot.Position.Y},
		}
	}

	return snap
}
