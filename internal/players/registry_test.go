package players

import "testing"

func TestAddPlayerTokenLength(t *testing.T) {
	r := NewRegistry()
	token, player := r.AddPlayer("fido", "map1")

	if len(token) != 32 {
		t.Fatalf("len(token) = %d, want 32", len(token))
	}
	if player.ID != 0 {
		t.Fatalf("player.ID = %d, want 0 for the first player ever registered", player.ID)
	}
	if player.Dog.ID != player.ID {
		t.Fatalf("Dog.ID = %d, want equal to player.ID %d", player.Dog.ID, player.ID)
	}
}

func TestAddPlayerDogIDsAreUnique(t *testing.T) {
	r := NewRegistry()
	_, p1 := r.AddPlayer("fido", "map1")
	_, p2 := r.AddPlayer("rex", "map1")

	if p1.ID == p2.ID {
		t.Fatalf("both players got dog id %d, want unique ids", p1.ID)
	}
}

func TestFindByToken(t *testing.T) {
	r := NewRegistry()
	token, player := r.AddPlayer("fido", "map1")

	found, ok := r.FindByToken(token)
	if !ok {
		t.Fatalf("FindByToken(%q) not found", token)
	}
	if found != player {
		t.Fatalf("FindByToken returned a different player")
	}

	if _, ok := r.FindByToken("unknown-token"); ok {
		t.Fatalf("FindByToken found a player for an unregistered token")
	}
}

func TestFindByDogAndMap(t *testing.T) {
	r := NewRegistry()
	_, player := r.AddPlayer("fido", "map1")

	found, ok := r.FindByDogAndMap(player.ID, "map1")
	if !ok || found != player {
		t.Fatalf("FindByDogAndMap(%d, map1) = (%v, %v), want (player, true)", player.ID, found, ok)
	}

	if _, ok := r.FindByDogAndMap(player.ID, "map2"); ok {
		t.Fatalf("FindByDogAndMap found a player under the wrong map")
	}
}
