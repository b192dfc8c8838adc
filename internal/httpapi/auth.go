package httpapi

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/klimchuk/roadtripgame/internal/apierror"
	"github.com/klimchuk/roadtripgame/internal/players"
)

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// authenticate validates the Authorization header and resolves it to a
// player (§6): missing or malformed tokens are invalidToken, well-formed
// but unregistered tokens are unknownToken.
func (s *Server) authenticate(r *http.Request) (*players.Player, *apierror.ClientError) {
	const prefix = "Bearer "

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return nil, apierror.InvalidToken("missing or malformed Authorization header")
	}

	token := strings.TrimPrefix(header, prefix)
	if !tokenPattern.MatchString(token) {
		return nil, apierror.InvalidToken("token must be exactly 32 hex characters")
	}

	player, ok := s.game.FindPlayerByToken(token)
	if !ok {
		return nil, apierror.UnknownToken()
	}
	return player, nil
}
