// Command roadtripgame starts the lost-and-found road-trip game server.
//
// It serves the §6 REST API and static client files, optionally ticking
// the simulation itself on a fixed period, and optionally tunneling the
// server through ngrok for remote playtesting.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	ngrok "golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/klimchuk/roadtripgame/internal/config"
	"github.com/klimchuk/roadtripgame/internal/game"
	"github.com/klimchuk/roadtripgame/internal/gamelog"
	"github.com/klimchuk/roadtripgame/internal/httpapi"
	"github.com/klimchuk/roadtripgame/internal/lane"
	"github.com/klimchuk/roadtripgame/internal/mcpagent"
	"github.com/klimchuk/roadtripgame/internal/wsfeed"
)

func main() {
	// Load .env if present so NGROK_AUTHTOKEN etc. can live outside the
	// process environment; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: error loading .env file: %v", err)
	}

	cmd := &cli.Command{
		Name:  "roadtripgame",
		Usage: "authoritative server for the lost-and-found road-trip game",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-file", Aliases: []string{"c"}, Required: true, Usage: "path to the JSON map configuration"},
			&cli.StringFlag{Name: "www-root", Aliases: []string{"w"}, Required: true, Usage: "static file root served outside /api"},
			&cli.IntFlag{Name: "tick-period", Aliases: []string{"t"}, Usage: "milliseconds between self-driven ticks; omit to drive ticks via POST /api/v1/game/tick"},
			&cli.BoolFlag{Name: "randomize-spawn-points", Usage: "place new dogs at a random point on the road network instead of the origin"},
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Value: ":8080", Usage: "address to bind the HTTP server to"},
			&cli.BoolFlag{Name: "ngrok", Usage: "tunnel the server through ngrok"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (optional)"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := gamelog.New()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	g, err := config.Load(cmd.String("config-file"), cmd.Bool("randomize-spawn-points"))
	if err != nil {
		return err
	}

	ln := lane.New()
	defer ln.Close()

	hub := wsfeed.NewHub(logger)
	hubStop := make(chan struct{})
	go hub.Run(hubStop)
	defer close(hubStop)

	address := cmd.String("address")
	internalTick := cmd.IsSet("tick-period")
	server := httpapi.New(g, ln, logger, cmd.String("www-root"), internalTick)

	mcpClient := mcpagent.NewClient("http://localhost" + address)

	mux := http.NewServeMux()
	mux.Handle("/", server)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("mapId"))
	})
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		handleMCP(w, r, mcpClient)
	})

	httpServer := &http.Server{
		Addr:         address,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	tickStop := make(chan struct{})
	if internalTick {
		period := time.Duration(cmd.Int("tick-period")) * time.Millisecond
		go tickLoop(ln, g, hub, period, tickStop)
	}
	defer close(tickStop)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	tunnelCtx, cancelTunnel := context.WithCancel(ctx)
	defer cancelTunnel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		gamelog.ServerStarted(logger, address, portFromAddress(address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server failed: %v", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go runNgrokTunnel(tunnelCtx, &wg, cmd, mux, logger)
	}

	<-stop
	cancelTunnel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	shutdownErr := httpServer.Shutdown(shutdownCtx)

	wg.Wait()
	gamelog.ServerExited(logger, 0, shutdownErr)
	return shutdownErr
}

// tickLoop self-drives the simulation every period and broadcasts each
// map's fresh state to any spectators connected to internal/wsfeed.
func tickLoop(ln *lane.Lane, g *game.Game, hub *wsfeed.Hub, period time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	dt := period.Seconds()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ln.Run(func() {
				g.SetTimeShift(dt)
				for _, m := range g.Maps() {
					if session, ok := g.SessionForMap(m.ID); ok {
						hub.Broadcast(wsfeed.BuildSnapshot(m.ID, session))
					}
				}
			})
		}
	}
}

func handleMCP(w http.ResponseWriter, r *http.Request, client *mcpagent.Client) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	resp := client.GetMCPServer().HandleMessage(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
	}
}

func portFromAddress(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}
