package wsfeed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestNewHub(t *testing.T) {
	hub := NewHub(zap.NewNop())

	if hub.clients == nil {
		t.Error("Hub clients map is nil")
	}
	if hub.register == nil || hub.unregister == nil || hub.broadcast == nil {
		t.Error("Hub channels are nil")
	}
}

func TestHubRegisterAndUnregisterClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := &Client{hub: hub, mapID: "map1", send: make(chan []byte, 4)}

	hub.registerClient(client)
	if len(hub.clients["map1"]) != 1 {
		t.Fatalf("clients[map1] = %d, want 1", len(hub.clients["map1"]))
	}

	hub.unregisterClient(client)
	if _, exists := hub.clients["map1"]; exists {
		t.Error("map1 entry should be cleaned up after its last client unregisters")
	}
}

func TestHubMultipleClientsPerMap(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := &Client{hub: hub, mapID: "map1", send: make(chan []byte, 4)}
	b := &Client{hub: hub, mapID: "map1", send: make(chan []byte, 4)}

	hub.registerClient(a)
	hub.registerClient(b)
	if len(hub.clients["map1"]) != 2 {
		t.Fatalf("clients[map1] = %d, want 2", len(hub.clients["map1"]))
	}

	hub.unregisterClient(a)
	if len(hub.clients["map1"]) != 1 {
		t.Fatalf("clients[map1] = %d, want 1", len(hub.clients["map1"]))
	}
	if !hub.clients["map1"][b] {
		t.Error("b should still be registered")
	}
}

func TestHubDeliverOnlyReachesMatchingMap(t *testing.T) {
	hub := NewHub(zap.NewNop())
	inMap := &Client{hub: hub, mapID: "map1", send: make(chan []byte, 4)}
	otherMap := &Client{hub: hub, mapID: "map2", send: make(chan []byte, 4)}
	hub.registerClient(inMap)
	hub.registerClient(otherMap)

	hub.deliver(&mapMessage{mapID: "map1", data: []byte(`{"mapId":"map1"}`)})

	select {
	case data := <-inMap.send:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if snap.MapID != "map1" {
			t.Errorf("MapID = %q, want map1", snap.MapID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no message delivered to map1 client")
	}

	select {
	case <-otherMap.send:
		t.Fatal("map2 client should not have received a map1 broadcast")
	default:
	}
}

func TestServeWSRegistersAndUnregisters(t *testing.T) {
	hub := NewHub(zap.NewNop())
	stop := make(chan struct{})
	go hub.Run(stop)
	defer close(stop)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "ws-test")
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if len(hub.clients["ws-test"]) != 1 {
		t.Fatalf("clients[ws-test] = %d, want 1", len(hub.clients["ws-test"]))
	}

	conn.Close()
	time.Sleep(50 * time.Millisecond)
	if _, exists := hub.clients["ws-test"]; exists {
		t.Error("ws-test entry should have been cleaned up after the socket closed")
	}
}

func TestServeWSReceivesBroadcastSnapshot(t *testing.T) {
	hub := NewHub(zap.NewNop())
	stop := make(chan struct{})
	go hub.Run(stop)
	defer close(stop)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "msg-test")
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	time.Sleep(20 * time.Millisecond)

	hub.Broadcast(Snapshot{
		MapID:   "msg-test",
		Players: map[string]DogState{"1": {Position: [2]float64{3, 4}}},
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if snap.Players["1"].Position != [2]float64{3, 4} {
		t.Errorf("Position = %v, want [3 4]", snap.Players["1"].Position)
	}
}
