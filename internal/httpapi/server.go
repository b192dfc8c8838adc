package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/klimchuk/roadtripgame/internal/game"
	"github.com/klimchuk/roadtripgame/internal/gamelog"
	"github.com/klimchuk/roadtripgame/internal/lane"
)

// Server is the §6 HTTP surface: the REST game API under /api/v1 and
// static file serving for everything else. Grounded on the teacher's
// api/server.go — a gorilla/mux router wrapping a single backing
// service — generalized from game/session sessions to the road-trip
// Game root, and from an unserialized service to one whose mutating
// calls are forced through a single lane.
type Server struct {
	game    *game.Game
	lane    *lane.Lane
	logger  *zap.Logger
	wwwRoot string
	router  *mux.Router
}

// New builds a Server. internalTick controls whether
// POST /api/v1/game/tick is registered: it is only available when the
// server is not already ticking itself (§6).
func New(g *game.Game, ln *lane.Lane, logger *zap.Logger, wwwRoot string, internalTick bool) *Server {
	s := &Server{
		game:    g,
		lane:    ln,
		logger:  logger,
		wwwRoot: wwwRoot,
		router:  mux.NewRouter(),
	}
	s.setupRoutes(internalTick)
	return s
}

func (s *Server) setupRoutes(internalTick bool) {
	// Keep raw paths: mux would otherwise redirect "/../x" to "/x" before
	// handleStatic can reject the traversal with 400.
	s.router.SkipClean(true)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/maps", s.handleMaps)
	api.HandleFunc("/maps/{id}", s.handleMapByID)
	api.HandleFunc("/game/join", s.handleJoin)
	api.HandleFunc("/game/players", func(w http.ResponseWriter, r *http.Request) {
		s.lane.Run(func() { s.handlePlayers(w, r) })
	})
	api.HandleFunc("/game/state", func(w http.ResponseWriter, r *http.Request) {
		s.lane.Run(func() { s.handleState(w, r) })
	})
	api.HandleFunc("/game/player/action", s.handleAction)
	if !internalTick {
		api.HandleFunc("/game/tick", s.handleTick)
	}

	s.router.PathPrefix("/").HandlerFunc(s.handleStatic)
}

// ServeHTTP implements http.Handler, logging "request received" /
// "response sent" around every request per §6.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	gamelog.RequestReceived(s.logger, r.RemoteAddr, r.URL.RequestURI(), r.Method)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(rec, r)

	gamelog.ResponseSent(s.logger, start, rec.status, rec.Header().Get("Content-Type"))
}

// statusRecorder captures the status code a handler wrote, since
// http.ResponseWriter doesn't expose it after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
