package model

import "testing"

func sessionTestMap() *Map {
	return &Map{
		ID:   "map1",
		Name: "Test Map",
		Roads: []Road{
			{Start: Point{0, 0}, End: Point{10, 0}},
		},
		Offices: []Office{
			{ID: "office1", Position: Point{20, 0}},
		},
		LootTypes:   []LootType{{Value: 10}, {Value: 20}},
		DogSpeed:    1,
		BagCapacity: 3,
	}
}

func TestAddDogFixedSpawnPlacesAtOrigin(t *testing.T) {
	s := NewGameSession(sessionTestMap(), 5, 0.5, false)
	dog := NewDog(1, "fido")
	s.AddDog(dog)

	if dog.Position != (Position{X: 0, Y: 0}) {
		t.Fatalf("Position = %+v, want (0,0)", dog.Position)
	}
	if len(s.Dogs()) != 1 {
		t.Fatalf("len(Dogs()) = %d, want 1", len(s.Dogs()))
	}
}

func TestSetTimeShiftPicksUpAdjacentLoot(t *testing.T) {
	s := NewGameSession(sessionTestMap(), 1000, 0, false) // long period: no new loot this tick
	dog := NewDog(1, "fido")
	s.AddDog(dog)
	// A stationary dog's gatherer segment is degenerate and collects
	// nothing (§4.2): give it a small sweep across the loot's position.
	dog.SetMovementParameters(DirRight, 1)

	s.loot[0] = Loot{Type: 0, Position: Position{X: 0.05, Y: 0}}

	events := s.SetTimeShift(0.1)

	var gotPickup bool
	for _, ev := range events {
		if ev.WasPickup && ev.LootID == 0 {
			gotPickup = true
		}
	}
	if !gotPickup {
		t.Fatalf("events = %+v, want a pickup of loot 0", events)
	}
	if len(dog.Bag) != 1 {
		t.Fatalf("len(Bag) = %d, want 1", len(dog.Bag))
	}
	if _, stillThere := s.Loot()[0]; stillThere {
		t.Fatalf("loot 0 still present after pickup")
	}
}

func TestSetTimeShiftDepositsAtOffice(t *testing.T) {
	m := sessionTestMap()
	m.Roads = []Road{{Start: Point{0, 0}, End: Point{25, 0}}}

	s := NewGameSession(m, 1000, 0, false)
	dog := NewDog(1, "fido")
	s.AddDog(dog)
	dog.AddToBag(5, 1) // type 1 worth 20
	dog.Position = Position{X: 19.95, Y: 0}
	// A stationary dog's gatherer segment is degenerate (§4.2): sweep it
	// across the office's position instead.
	dog.SetMovementParameters(DirRight, 1)

	events := s.SetTimeShift(0.1)

	if dog.Score != 20 {
		t.Fatalf("Score = %d, want 20", dog.Score)
	}
	if len(dog.Bag) != 0 {
		t.Fatalf("len(Bag) = %d, want 0 after deposit", len(dog.Bag))
	}

	var gotDeposit bool
	for _, ev := range events {
		if ev.WasDeposit {
			gotDeposit = true
		}
	}
	if !gotDeposit {
		t.Fatalf("events = %+v, want a deposit event", events)
	}
}

func TestSetTimeShiftGeneratesLootWhenShort(t *testing.T) {
	s := NewGameSession(sessionTestMap(), 1, 1, false)
	dog := NewDog(1, "fido")
	s.AddDog(dog)
	dog.SetMovementParameters(DirStop, 0)

	s.SetTimeShift(1)

	if len(s.Loot()) == 0 {
		t.Fatalf("Loot() is empty, want at least one generated item")
	}
}
