package model

import "math"

// direction the four cardinal neighbour lookups key on.
type roadDirection int

const (
	dirRight roadDirection = iota
	dirLeft
	dirUp
	dirDown
)

// RoadGraph is the per-session derived structure (§4.4) mapping road
// endpoints to neighbouring roads in each cardinal direction. It is built
// once when a GameSession is created and never mutated afterwards.
type RoadGraph struct {
	roads []Road // oriented so Start < End on the road's axis

	neighbours [4]map[Point]int // roadDirection -> endpoint -> index into roads

	// startingRoad is a road whose oriented start is (0,0), preferring a
	// rightward-going road over a downward one, used to place dogs when
	// spawn points are not randomized. Roads that only end at (0,0) are
	// not considered.
	startingRoad int
}

// NewRoadGraph orients every road so its start precedes its end on its
// axis, then registers it under the four endpoint lookups.
func NewRoadGraph(roads []Road) *RoadGraph {
	g := &RoadGraph{
		neighbours: [4]map[Point]int{
			dirRight: {}, dirLeft: {}, dirUp: {}, dirDown: {},
		},
	}

	for _, road := range roads {
		var oriented Road
		switch {
		case road.IsHorizontal():
			if road.Start.X <= road.End.X {
				oriented = road
			} else {
				oriented = Road{Start: road.End, End: road.Start}
			}
			idx := len(g.roads)
			g.roads = append(g.roads, oriented)
			g.neighbours[dirRight][oriented.Start] = idx
			g.neighbours[dirLeft][oriented.End] = idx
		default: // vertical
			if road.Start.Y <= road.End.Y {
				oriented = road
			} else {
				oriented = Road{Start: road.End, End: road.Start}
			}
			idx := len(g.roads)
			g.roads = append(g.roads, oriented)
			g.neighbours[dirDown][oriented.Start] = idx
			g.neighbours[dirUp][oriented.End] = idx
		}
	}

	g.startingRoad = -1
	if idx, ok := g.neighbours[dirRight][Point{0, 0}]; ok {
		g.startingRoad = idx
	} else if idx, ok := g.neighbours[dirDown][Point{0, 0}]; ok {
		g.startingRoad = idx
	}

	return g
}

// Roads returns the oriented road list, in construction order.
func (g *RoadGraph) Roads() []Road {
	return g.roads
}

// StartingRoad returns the index of the road used to place dogs when
// spawn points are not randomized, or -1 if no road starts at (0,0).
func (g *RoadGraph) StartingRoad() int {
	return g.startingRoad
}

// neighbourInDirection looks up the road adjoining pt in the given
// direction, returning its index and whether one exists.
func (g *RoadGraph) neighbourInDirection(dir roadDirection, pt Point) (int, bool) {
	idx, ok := g.neighbours[dir][pt]
	return idx, ok
}

// RoundCoord implements §4.4's endpoint rounding rule: a coordinate whose
// fractional part is at most halfRoadWidth (within epsilon) rounds down to
// its floor; any larger fractional part rounds up to the next integer.
func RoundCoord(c float64) int {
	floor := math.Floor(c)
	frac := c - floor
	if lessOrEqual(frac, halfRoadWidth) {
		return int(floor)
	}
	return int(floor) + 1
}

// RoundPoint rounds both coordinates of a continuous position to the
// integer endpoint key used by the road-graph lookups.
func RoundPoint(x, y float64) Point {
	return Point{X: RoundCoord(x), Y: RoundCoord(y)}
}

func checkEqual(lhs, rhs float64) bool {
	return math.Abs(lhs-rhs) < epsilon
}

func lessOrEqual(lhs, rhs float64) bool {
	return lhs < rhs || checkEqual(lhs, rhs)
}
