// Command mapcheck validates a lost-and-found road-trip game config file
// beyond what internal/config enforces at load time: it checks that the
// road network is a single connected component, that every office sits
// on a road, that office ids are unique within a map, and warns about
// maps that declare no loot types (loot will never spawn there).
//
// Adapted from the teacher's validate/validate.go (structural + grid
// reachability checks for the grid game) and cmd/analyze/main.go,
// retargeted from ASCII grid layouts to this spec's road-segment JSON
// schema.
package main

import (
	"fmt"
	"os"

	"github.com/klimchuk/roadtripgame/internal/config"
	"github.com/klimchuk/roadtripgame/internal/model"
)

// mapResult captures the outcome of checking a single map.
type mapResult struct {
	ID       string
	Valid    bool
	Problems []string
	Notes    []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <config-file.json>\n", os.Args[0])
		os.Exit(2)
	}

	path := os.Args[1]
	g, err := config.Load(path, false)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)
		os.Exit(1)
	}

	allValid := true
	for _, m := range g.Maps() {
		result := checkMap(m)

		fmt.Printf("\n==== %s ====\n", result.ID)
		if result.Valid {
			fmt.Println("VALID")
		} else {
			fmt.Println("INVALID")
			allValid = false
		}
		for _, p := range result.Problems {
			fmt.Println("  ✗ " + p)
		}
		for _, n := range result.Notes {
			fmt.Println("  ✓ " + n)
		}
	}

	if !allValid {
		os.Exit(1)
	}
	fmt.Println("\nall maps are valid")
}

func checkMap(m *model.Map) mapResult {
	result := mapResult{ID: m.ID, Valid: true}

	if unreachable := unreachableEndpoints(m.Roads); len(unreachable) > 0 {
		result.Valid = false
		result.Problems = append(result.Problems, fmt.Sprintf("road network is not connected: %d endpoint(s) unreachable from the first road", len(unreachable)))
		for _, pt := range unreachable {
			result.Problems = append(result.Problems, fmt.Sprintf("unreachable endpoint (%d,%d)", pt.X, pt.Y))
		}
	} else {
		result.Notes = append(result.Notes, fmt.Sprintf("road network is a single connected component (%d roads)", len(m.Roads)))
	}

	seenOfficeID := make(map[string]bool, len(m.Offices))
	for _, office := range m.Offices {
		if seenOfficeID[office.ID] {
			result.Valid = false
			result.Problems = append(result.Problems, fmt.Sprintf("duplicate office id %q", office.ID))
		}
		seenOfficeID[office.ID] = true

		if !pointOnAnyRoad(office.Position, m.Roads) {
			result.Valid = false
			result.Problems = append(result.Problems, fmt.Sprintf("office %q at (%d,%d) is not on any road", office.ID, office.Position.X, office.Position.Y))
		}
	}
	if len(m.Offices) > 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("%d office(s) checked", len(m.Offices)))
	}

	if m.NumLootTypes() == 0 {
		result.Problems = append(result.Problems, "no loot types declared; loot will never spawn on this map")
	} else {
		result.Notes = append(result.Notes, fmt.Sprintf("%d loot type(s) declared", m.NumLootTypes()))
	}

	return result
}

// unreachableEndpoints flood-fills the road graph from the first road's
// start point and returns every endpoint not reached, via the shared
// edges the roads form between their Start/End points.
func unreachableEndpoints(roads []model.Road) []model.Point {
	if len(roads) == 0 {
		return nil
	}

	adjacency := make(map[model.Point][]model.Point)
	endpoints := make(map[model.Point]bool)
	for _, r := range roads {
		adjacency[r.Start] = append(adjacency[r.Start], r.End)
		adjacency[r.End] = append(adjacency[r.End], r.Start)
		endpoints[r.Start] = true
		endpoints[r.End] = true
	}

	visited := make(map[model.Point]bool)
	queue := []model.Point{roads[0].Start}
	visited[roads[0].Start] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreached []model.Point
	for pt := range endpoints {
		if !visited[pt] {
			unreached = append(unreached, pt)
		}
	}
	return unreached
}

// pointOnAnyRoad reports whether pt lies on the span of at least one
// road (inclusive of its endpoints).
func pointOnAnyRoad(pt model.Point, roads []model.Road) bool {
	for _, r := range roads {
		if r.IsHorizontal() {
			if pt.Y != r.Start.Y {
				continue
			}
			lo, hi := r.Start.X, r.End.X
			if lo > hi {
				lo, hi = hi, lo
			}
			if pt.X >= lo && pt.X <= hi {
				return true
			}
		} else {
			if pt.X != r.Start.X {
				continue
			}
			lo, hi := r.Start.Y, r.End.Y
			if lo > hi {
				lo, hi = hi, lo
			}
			if pt.Y >= lo && pt.Y <= hi {
				return true
			}
		}
	}
	return false
}
