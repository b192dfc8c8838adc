package httpapi

import "github.com/klimchuk/roadtripgame/internal/model"

type mapSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type mapFull struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Roads     []model.Road     `json:"roads"`
	Buildings []model.Building `json:"buildings"`
	Offices   []model.Office   `json:"offices"`
	LootTypes []model.LootType `json:"lootTypes"`
}

type joinRequest struct {
	UserName string `json:"userName"`
	MapID    string `json:"mapId"`
}

type joinResponse struct {
	AuthToken string `json:"authToken"`
	PlayerID  uint64 `json:"playerId"`
}

type playerInfo struct {
	Name string `json:"name"`
}

type bagItemDTO struct {
	ID   uint64 `json:"id"`
	Type int    `json:"type"`
}

type playerState struct {
	Position [2]float64   `json:"pos"`
	Speed    [2]float64   `json:"speed"`
	Dir      string       `json:"dir"`
	Bag      []bagItemDTO `json:"bag"`
	Score    uint64       `json:"score"`
}

type lostObjectDTO struct {
	Type     int        `json:"type"`
	Position [2]float64 `json:"pos"`
}

type stateResponse struct {
	Players     map[string]playerState   `json:"players"`
	LostObjects map[string]lostObjectDTO `json:"lostObjects"`
}

type actionRequest struct {
	Move string `json:"move"`
}

type tickRequest struct {
	TimeDelta float64 `json:"timeDelta"`
}
