package model

import "sort"

// CollisionItem is a stationary collision target: an office or a loot item.
type CollisionItem struct {
	Position Position
	Radius   float64
}

// Gatherer is a dog's movement segment for one tick, the distance it swept
// between start and end position.
type Gatherer struct {
	Start  Position
	End    Position
	Radius float64
}

// CollisionEvent records one gatherer passing within range of one item.
type CollisionEvent struct {
	GathererID int
	ItemID     int
	SqDistance float64
	Ratio      float64 // fraction of the gatherer's segment, in [0,1]
}

// DetectCollisions implements §4.2: for every (gatherer, item) pair, project
// item-start onto the gatherer's segment, clamp to [0,1], and emit an event
// if the closest approach is within the combined radii. Degenerate
// gatherers (start == end) never emit events. The result is sorted
// ascending by Ratio, ties broken by insertion order (gatherer index, then
// item index), matching the order collisions are applied in §4.6.
func DetectCollisions(items []CollisionItem, gatherers []Gatherer) []CollisionEvent {
	var events []CollisionEvent

	for gi, g := range gatherers {
		dx := g.End.X - g.Start.X
		dy := g.End.Y - g.Start.Y
		segLenSq := dx*dx + dy*dy
		if segLenSq == 0 {
			continue
		}

		for ii, item := range items {
			px := item.Position.X - g.Start.X
			py := item.Position.Y - g.Start.Y

			ratio := (px*dx + py*dy) / segLenSq
			if ratio < 0 {
				ratio = 0
			} else if ratio > 1 {
				ratio = 1
			}

			closestX := g.Start.X + ratio*dx
			closestY := g.Start.Y + ratio*dy

			ddx := item.Position.X - closestX
			ddy := item.Position.Y - closestY
			sqDist := ddx*ddx + ddy*ddy

			maxDist := g.Radius + item.Radius
			if sqDist > maxDist*maxDist {
				continue
			}

			events = append(events, CollisionEvent{
				GathererID: gi,
				ItemID:     ii,
				SqDistance: sqDist,
				Ratio:      ratio,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Ratio < events[j].Ratio
	})

	return events
}
