package main

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	ngrok "golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// runNgrokTunnel starts a public ngrok tunnel and serves handler through
// it until ctx is cancelled. Grounded on the teacher's runHTTPServer
// ngrok wiring in main.go.
func runNgrokTunnel(ctx context.Context, wg *sync.WaitGroup, cmd *cli.Command, handler http.Handler, logger *zap.Logger) {
	defer wg.Done()

	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if domain := cmd.String("ngrok-domain"); domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.Warn("failed to start ngrok tunnel", zap.Error(err))
		return
	}
	defer tun.Close()

	logger.Info("ngrok tunnel established", zap.String("url", tun.URL()))

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		logger.Warn("ngrok server error", zap.Error(err))
	}
}
