package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/klimchuk/roadtripgame/internal/apierror"
	"github.com/klimchuk/roadtripgame/internal/model"
)

func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	maps := s.game.Maps()
	out := make([]mapSummary, len(maps))
	for i, m := range maps {
		out[i] = mapSummary{ID: m.ID, Name: m.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMapByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	id := mux.Vars(r)["id"]
	m, ok := s.game.FindMap(id)
	if !ok {
		writeClientError(w, apierror.MapNotFound(id))
		return
	}

	writeJSON(w, http.StatusOK, mapFull{
		ID:        m.ID,
		Name:      m.Name,
		Roads:     m.Roads,
		Buildings: m.Buildings,
		Offices:   m.Offices,
		LootTypes: m.LootTypes,
	})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, apierror.InvalidArgument("invalid JSON body"))
		return
	}
	if req.UserName == "" {
		writeClientError(w, apierror.InvalidArgument("userName must not be empty"))
		return
	}

	var (
		token    string
		playerID uint64
		joined   bool
	)
	s.lane.Run(func() {
		token, playerID, joined = s.game.AddPlayer(req.UserName, req.MapID)
	})
	if !joined {
		writeClientError(w, apierror.MapNotFound(req.MapID))
		return
	}

	writeJSON(w, http.StatusOK, joinResponse{AuthToken: token, PlayerID: playerID})
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	player, authErr := s.authenticate(r)
	if authErr != nil {
		writeClientError(w, authErr)
		return
	}

	session, ok := s.game.SessionForMap(player.MapID)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]playerInfo{})
		return
	}

	out := make(map[string]playerInfo, len(session.Dogs()))
	for _, dog := range session.Dogs() {
		out[strconv.FormatUint(dog.ID, 10)] = playerInfo{Name: dog.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	player, authErr := s.authenticate(r)
	if authErr != nil {
		writeClientError(w, authErr)
		return
	}

	resp := stateResponse{
		Players:     map[string]playerState{},
		LostObjects: map[string]lostObjectDTO{},
	}

	session, ok := s.game.SessionForMap(player.MapID)
	if !ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	for _, dog := range session.Dogs() {
		bag := make([]bagItemDTO, len(dog.Bag))
		for i, item := range dog.Bag {
			bag[i] = bagItemDTO{ID: item.LootID, Type: item.Type}
		}
		resp.Players[strconv.FormatUint(dog.ID, 10)] = playerState{
			Position: [2]float64{dog.Position.X, dog.Position.Y},
			Speed:    [2]float64{dog.Velocity.Horizontal, dog.Velocity.Vertical},
			Dir:      string(dog.Direction),
			Bag:      bag,
			Score:    dog.Score,
		}
	}

	for id, loot := range session.Loot() {
		resp.LostObjects[strconv.FormatUint(id, 10)] = lostObjectDTO{
			Type:     loot.Type,
			Position: [2]float64{loot.Position.X, loot.Position.Y},
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	player, authErr := s.authenticate(r)
	if authErr != nil {
		writeClientError(w, authErr)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, apierror.InvalidArgument("invalid JSON body"))
		return
	}

	dir := model.Direction(req.Move)
	switch dir {
	case model.DirLeft, model.DirRight, model.DirUp, model.DirDown, model.DirStop:
	default:
		writeClientError(w, apierror.InvalidArgument("move must be one of L, R, U, D, or empty"))
		return
	}

	m, ok := s.game.FindMap(player.MapID)
	if !ok {
		writeClientError(w, apierror.MapNotFound(player.MapID))
		return
	}

	s.lane.Run(func() {
		player.Dog.SetMovementParameters(dir, m.DogSpeed)
	})

	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req tickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, apierror.InvalidArgument("invalid JSON body"))
		return
	}
	if req.TimeDelta < 1e-6 {
		writeClientError(w, apierror.InvalidArgument("timeDelta must be >= 1e-6"))
		return
	}

	var tickErr error
	s.lane.Run(func() {
		tickErr = s.game.SetTimeShift(req.TimeDelta / 1000)
	})
	if tickErr != nil {
		writeClientError(w, apierror.InvalidArgument("%v", tickErr))
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
