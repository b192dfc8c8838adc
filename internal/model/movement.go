package model

// moveDog advances one dog along the road graph for dt seconds, following
// §4.5. currentRoad is the index (into graph.Roads()) of the road the dog
// currently occupies; moveDog returns the index of the road the dog ends up
// on, which may be unchanged, a neighbour, or (if the dog was not moving)
// the same road it started on.
func moveDog(graph *RoadGraph, dog *Dog, currentRoad int, dt float64) int {
	switch dog.Direction {
	case DirRight:
		if dog.Velocity.Horizontal == 0 {
			return currentRoad
		}
		return moveAlongX(graph, dog, currentRoad, dt*dog.Velocity.Horizontal, dirRight)
	case DirLeft:
		if dog.Velocity.Horizontal == 0 {
			return currentRoad
		}
		return moveAlongX(graph, dog, currentRoad, dt*dog.Velocity.Horizontal, dirLeft)
	case DirDown:
		if dog.Velocity.Vertical == 0 {
			return currentRoad
		}
		return moveAlongY(graph, dog, currentRoad, dt*dog.Velocity.Vertical, dirDown)
	case DirUp:
		if dog.Velocity.Vertical == 0 {
			return currentRoad
		}
		return moveAlongY(graph, dog, currentRoad, dt*dog.Velocity.Vertical, dirUp)
	default: // Stop
		return currentRoad
	}
}

// moveAlongX walks the dog along the x axis (Right when distance > 0, Left
// when distance < 0), crossing into neighbouring roads as needed, until the
// distance is exhausted, the map boundary is reached, or the dog's own
// road's far edge is reached exactly.
func moveAlongX(graph *RoadGraph, dog *Dog, currentRoad int, distance float64, dir roadDirection) int {
	pos := dog.Position
	road := graph.roads[currentRoad]

	for {
		var edge float64
		if dir == dirRight {
			edge = float64(road.End.X) + halfRoadWidth
		} else {
			edge = float64(road.Start.X) - halfRoadWidth
		}

		target := pos.X + distance
		withinEdge := dir == dirRight && lessOrEqual(target, edge) ||
			dir == dirLeft && lessOrEqual(edge, target)

		if withinEdge {
			pos.X = target
			dog.Position = pos
			if checkEqual(target, edge) {
				dog.SetMovementParameters(DirStop, 0)
			}
			return currentRoad
		}

		distance -= edge - pos.X
		pos.X = edge
		dog.Position = pos

		key := RoundPoint(pos.X, pos.Y)
		nextIdx, ok := graph.neighbourInDirection(dir, key)
		if !ok {
			dog.SetMovementParameters(DirStop, 0)
			return currentRoad
		}
		currentRoad = nextIdx
		road = graph.roads[currentRoad]
	}
}

// moveAlongY is the vertical twin of moveAlongX (Down when distance > 0, Up
// when distance < 0).
func moveAlongY(graph *RoadGraph, dog *Dog, currentRoad int, distance float64, dir roadDirection) int {
	pos := dog.Position
	road := graph.roads[currentRoad]

	for {
		var edge float64
		if dir == dirDown {
			edge = float64(road.End.Y) + halfRoadWidth
		} else {
			edge = float64(road.Start.Y) - halfRoadWidth
		}

		target := pos.Y + distance
		withinEdge := dir == dirDown && lessOrEqual(target, edge) ||
			dir == dirUp && lessOrEqual(edge, target)

		if withinEdge {
			pos.Y = target
			dog.Position = pos
			if checkEqual(target, edge) {
				dog.SetMovementParameters(DirStop, 0)
			}
			return currentRoad
		}

		distance -= edge - pos.Y
		pos.Y = edge
		dog.Position = pos

		key := RoundPoint(pos.X, pos.Y)
		nextIdx, ok := graph.neighbourInDirection(dir, key)
		if !ok {
			dog.SetMovementParameters(DirStop, 0)
			return currentRoad
		}
		currentRoad = nextIdx
		road = graph.roads[currentRoad]
	}
}
