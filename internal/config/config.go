package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klimchuk/roadtripgame/internal/apierror"
	"github.com/klimchuk/roadtripgame/internal/game"
	"github.com/klimchuk/roadtripgame/internal/model"
)

type document struct {
	DefaultDogSpeed     *float64 `json:"defaultDogSpeed"`
	DefaultBagCapacity  *uint    `json:"defaultBagCapacity"`
	LootGeneratorConfig lootDoc  `json:"lootGeneratorConfig"`
	Maps                []mapDoc `json:"maps"`
}

type lootDoc struct {
	Period      float64 `json:"period"`
	Probability float64 `json:"probability"`
}

type mapDoc struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DogSpeed    float64          `json:"dogSpeed"`
	BagCapacity uint             `json:"bagCapacity"`
	LootTypes   []model.LootType `json:"lootTypes"`
	Roads       []model.Road     `json:"roads"`
	Buildings   []model.Building `json:"buildings"`
	Offices     []model.Office   `json:"offices"`
}

// Load reads the config file at path and builds a *game.Game from it,
// per §6. randomSpawn sets §4.8's spawn placement rule for every session
// the game creates. Any failure is wrapped in an *apierror.ConfigError,
// since a bad config is fatal at startup.
func Load(path string, randomSpawn bool) (*game.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apierror.ConfigError{Path: path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &apierror.ConfigError{Path: path, Err: err}
	}

	if err := validate(&doc); err != nil {
		return nil, &apierror.ConfigError{Path: path, Err: err}
	}

	lootConfig := game.LootGeneratorConfig{
		Period:      doc.LootGeneratorConfig.Period,
		Probability: doc.LootGeneratorConfig.Probability,
	}

	g := game.New(lootConfig, randomSpawn)

	dogSpeed := game.DefaultDogSpeed
	if doc.DefaultDogSpeed != nil {
		dogSpeed = *doc.DefaultDogSpeed
	}
	bagCapacity := uint(game.DefaultBagCapacity)
	if doc.DefaultBagCapacity != nil {
		bagCapacity = *doc.DefaultBagCapacity
	}
	g.SetDefaults(dogSpeed, bagCapacity)

	for _, md := range doc.Maps {
		m := &model.Map{
			ID:          md.ID,
			Name:        md.Name,
			Roads:       md.Roads,
			Buildings:   md.Buildings,
			Offices:     md.Offices,
			LootTypes:   md.LootTypes,
			DogSpeed:    md.DogSpeed,
			BagCapacity: md.BagCapacity,
		}
		if err := g.AddMap(m); err != nil {
			return nil, &apierror.ConfigError{Path: path, Err: err}
		}
	}

	return g, nil
}

func validate(doc *document) error {
	if doc.LootGeneratorConfig.Period <= 0 {
		return fmt.Errorf("lootGeneratorConfig.period must be > 0, got %v", doc.LootGeneratorConfig.Period)
	}
	if doc.LootGeneratorConfig.Probability < 0 || doc.LootGeneratorConfig.Probability > 1 {
		return fmt.Errorf("lootGeneratorConfig.probability must be in [0,1], got %v", doc.LootGeneratorConfig.Probability)
	}
	if len(doc.Maps) == 0 {
		return fmt.Errorf("config must declare at least one map")
	}

	seen := make(map[string]bool, len(doc.Maps))
	for _, md := range doc.Maps {
		if md.ID == "" {
			return fmt.Errorf("map with empty id")
		}
		if seen[md.ID] {
			return fmt.Errorf("duplicate map id %q", md.ID)
		}
		seen[md.ID] = true

		if len(md.Roads) == 0 {
			return fmt.Errorf("map %q declares no roads", md.ID)
		}
	}
	return nil
}
