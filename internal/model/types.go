package model

import "encoding/json"

// Point is an integer-valued coordinate: a road endpoint, a building corner,
// an office position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Position is a dog or loot's continuous location.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Velocity is a dog's signed speed along each axis.
type Velocity struct {
	Horizontal float64 `json:"sx"`
	Vertical   float64 `json:"sy"`
}

// Size is a building's width/height in grid units.
type Size struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// halfRoadWidth is the distance from a road's centerline to its walkable
// edge on either side.
const halfRoadWidth = 0.4

// officeRadius is the effective gather radius of an office deposit point.
const officeRadius = 0.25

// dogRadius is the effective gather radius of a dog's movement segment.
const dogRadius = 0.3

// epsilon bounds floating point comparisons throughout the movement and
// collision code.
const epsilon = 1e-6

// Road is an axis-aligned segment between two integer endpoints. It is
// horizontal when both endpoints share a y, vertical when they share an x.
type Road struct {
	Start Point
	End   Point
}

// IsHorizontal reports whether the road runs along the x axis.
func (r Road) IsHorizontal() bool {
	return r.Start.Y == r.End.Y
}

// IsVertical reports whether the road runs along the y axis.
func (r Road) IsVertical() bool {
	return r.Start.X == r.End.X
}

// MarshalJSON renders the road in the wire shape clients expect:
// {"x0":.., "y0":.., "x1":..} for a horizontal road or
// {"x0":.., "y0":.., "y1":..} for a vertical one.
func (r Road) MarshalJSON() ([]byte, error) {
	if r.IsHorizontal() {
		return json.Marshal(struct {
			X0 int `json:"x0"`
			Y0 int `json:"y0"`
			X1 int `json:"x1"`
		}{r.Start.X, r.Start.Y, r.End.X})
	}
	return json.Marshal(struct {
		X0 int `json:"x0"`
		Y0 int `json:"y0"`
		Y1 int `json:"y1"`
	}{r.Start.X, r.Start.Y, r.End.Y})
}

// UnmarshalJSON accepts the config document's {x0,y0,x1|y1} shape.
func (r *Road) UnmarshalJSON(data []byte) error {
	var raw struct {
		X0 int  `json:"x0"`
		Y0 int  `json:"y0"`
		X1 *int `json:"x1"`
		Y1 *int `json:"y1"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Start = Point{X: raw.X0, Y: raw.Y0}
	switch {
	case raw.X1 != nil:
		r.End = Point{X: *raw.X1, Y: raw.Y0}
	case raw.Y1 != nil:
		r.End = Point{X: raw.X0, Y: *raw.Y1}
	default:
		r.End = r.Start
	}
	return nil
}

// Building is an integer-aligned rectangle used only for client rendering.
type Building struct {
	Position Point
	Size     Size
}

// MarshalJSON renders the building as {"x","y","w","h"}.
func (b Building) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	}{b.Position.X, b.Position.Y, b.Size.Width, b.Size.Height})
}

// UnmarshalJSON accepts the config document's {x,y,w,h} shape.
func (b *Building) UnmarshalJSON(data []byte) error {
	var raw struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Position = Point{X: raw.X, Y: raw.Y}
	b.Size = Size{Width: raw.W, Height: raw.H}
	return nil
}

// Office is a deposit point that converts a dog's backpack into score.
type Office struct {
	ID       string
	Position Point
	OffsetX  int
	OffsetY  int
}

// MarshalJSON renders the office as {"id","x","y","offsetX","offsetY"}.
func (o Office) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string `json:"id"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
		OffsetX int    `json:"offsetX"`
		OffsetY int    `json:"offsetY"`
	}{o.ID, o.Position.X, o.Position.Y, o.OffsetX, o.OffsetY})
}

// UnmarshalJSON accepts the config document's {id,x,y,offsetX,offsetY} shape.
func (o *Office) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string `json:"id"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
		OffsetX int    `json:"offsetX"`
		OffsetY int    `json:"offsetY"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.ID = raw.ID
	o.Position = Point{X: raw.X, Y: raw.Y}
	o.OffsetX = raw.OffsetX
	o.OffsetY = raw.OffsetY
	return nil
}

// LootType is one entry of a map's loot-type catalogue. Value is the score
// awarded per item of this type at deposit time; Raw keeps every field from
// the config document (including ones this server doesn't interpret) so it
// can be echoed back verbatim on GET /api/v1/maps/{id}.
type LootType struct {
	Value uint64
	Raw   json.RawMessage
}

// MarshalJSON re-emits the original config object unchanged.
func (lt LootType) MarshalJSON() ([]byte, error) {
	if lt.Raw != nil {
		return lt.Raw, nil
	}
	return json.Marshal(struct {
		Value uint64 `json:"value"`
	}{lt.Value})
}

// UnmarshalJSON keeps the raw object around and extracts the value field
// used for scoring.
func (lt *LootType) UnmarshalJSON(data []byte) error {
	lt.Raw = append(json.RawMessage(nil), data...)

	var v struct {
		Value uint64 `json:"value"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	lt.Value = v.Value
	return nil
}

// Map is the immutable description of a single playable world: its roads,
// buildings, offices, loot-type catalogue, dog speed and bag capacity.
type Map struct {
	ID          string
	Name        string
	Roads       []Road
	Buildings   []Building
	Offices     []Office
	LootTypes   []LootType
	DogSpeed    float64
	BagCapacity uint
}

// NumLootTypes returns the number of loot types this map declares.
func (m *Map) NumLootTypes() int {
	return len(m.LootTypes)
}

// LootTypeValue returns the score awarded for depositing one item of the
// given type. The caller must ensure typ is in range; it always is, since
// loot is only ever generated with 0 <= typ < NumLootTypes.
func (m *Map) LootTypeValue(typ int) uint64 {
	return m.LootTypes[typ].Value
}

// Direction is a dog's facing / commanded heading.
type Direction string

const (
	DirLeft  Direction = "L"
	DirRight Direction = "R"
	DirUp    Direction = "U"
	DirDown  Direction = "D"
	DirStop  Direction = ""
)

// BagItem is one piece of loot carried in a dog's backpack.
type BagItem struct {
	LootID uint64 `json:"id"`
	Type   int    `json:"type"`
}

// Dog is a player's avatar: its position, velocity, backpack and score.
type Dog struct {
	ID        uint64
	Name      string
	Direction Direction
	Position  Position
	Velocity  Velocity
	Bag       []BagItem
	Score     uint64
}

// NewDog creates a dog at the origin, facing up and stationary, per §3's
// stated initial direction/velocity.
func NewDog(id uint64, name string) *Dog {
	return &Dog{
		ID:        id,
		Name:      name,
		Direction: DirUp,
	}
}

// SetMovementParameters applies §4.3: Stop zeroes velocity but never
// changes the facing direction, so clients keep seeing the dog's last
// heading while it stands still.
func (d *Dog) SetMovementParameters(dir Direction, speed float64) {
	switch dir {
	case DirUp:
		d.Velocity = Velocity{Horizontal: 0, Vertical: -speed}
	case DirDown:
		d.Velocity = Velocity{Horizontal: 0, Vertical: speed}
	case DirLeft:
		d.Velocity = Velocity{Horizontal: -speed, Vertical: 0}
	case DirRight:
		d.Velocity = Velocity{Horizontal: speed, Vertical: 0}
	case DirStop:
		d.Velocity = Velocity{}
		return
	}
	d.Direction = dir
}

// AddToBag appends a loot item to the backpack. Bag capacity is declared on
// the map but is not enforced here: see the Open Question decision in
// DESIGN.md.
func (d *Dog) AddToBag(lootID uint64, typ int) {
	d.Bag = append(d.Bag, BagItem{LootID: lootID, Type: typ})
}

// EmptyBag clears the backpack, called when a dog visits an office.
func (d *Dog) EmptyBag() {
	d.Bag = nil
}

// Loot is a collectible placed on the road network.
type Loot struct {
	Type     int
	Position Position
}
