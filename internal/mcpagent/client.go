package mcpagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP client that proxies all tool calls to the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient builds a Client whose tools call the REST API at baseURL.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	c.initMCPServer()
	return c
}

// GetMCPServer returns the underlying MCP server for serving over stdio
// or HTTP.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Road Trip Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Road Trip Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Collect lost items scattered across the road network and drop them off at
an office to score points. Your dog moves along roads at a fixed speed
until you change its direction or stop it.

AVAILABLE TOOLS:
- list_maps: List every playable map
- map_info: Get a map's roads, buildings, offices and loot types
- join_game: Join a map under a chosen name; returns an auth_token to use
  with every other tool
- game_state: Get every player's position, backpack and score, and every
  piece of loot still on the road
- players: List the names of everyone currently on the map
- move: Change your dog's direction (up/down/left/right/stop)`),
	)

	c.registerTools()
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_maps",
		Description: "List every playable map",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMaps)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "map_info",
		Description: "Get a map's roads, buildings, offices and loot types",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map_id": map[string]interface{}{
					"type":        "string",
					"description": "Map id, as returned by list_maps",
				},
			},
			Required: []string{"map_id"},
		},
	}, c.handleMapInfo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "join_game",
		Description: "Join a map under a chosen name; returns an auth_token",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name for this player's dog",
				},
				"map_id": map[string]interface{}{
					"type":        "string",
					"description": "Map id to join, as returned by list_maps",
				},
			},
			Required: []string{"user_name", "map_id"},
		},
	}, c.handleJoinGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get every player's position, backpack and score, and every piece of loot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"auth_token": map[string]interface{}{
					"type":        "string",
					"description": "Token returned by join_game",
				},
			},
			Required: []string{"auth_token"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "players",
		Description: "List the names of everyone currently on the map",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"auth_token": map[string]interface{}{
					"type":        "string",
					"description": "Token returned by join_game",
				},
			},
			Required: []string{"auth_token"},
		},
	}, c.handlePlayers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Change your dog's direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"auth_token": map[string]interface{}{
					"type":        "string",
					"description": "Token returned by join_game",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right", "stop"},
					"description": "Direction to move, or stop to stand still",
				},
			},
			Required: []string{"auth_token", "direction"},
		},
	}, c.handleMove)
}

var directionCode = map[string]string{
	"up":    "U",
	"down":  "D",
	"left":  "L",
	"right": "R",
	"stop":  "",
}

func (c *Client) handleListMaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var maps []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.apiCall("GET", "/api/v1/maps", "", nil, &maps); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Maps (%d):\n", len(maps))
	for _, m := range maps {
		result += fmt.Sprintf("- %s: %s\n", m.ID, m.Name)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMapInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapID, _ := args["map_id"].(string)

	var body json.RawMessage
	if err := c.apiCall("GET", "/api/v1/maps/"+mapID, "", nil, &body); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (c *Client) handleJoinGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	userName, _ := args["user_name"].(string)
	mapID, _ := args["map_id"].(string)

	body := map[string]string{"userName": userName, "mapId": mapID}

	var joined struct {
		AuthToken string `json:"authToken"`
		PlayerID  uint64 `json:"playerId"`
	}
	if err := c.apiCall("POST", "/api/v1/game/join", "", body, &joined); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Joined as player %d.\nauth_token: %s\nUse this token with game_state, players and move.",
		joined.PlayerID, joined.AuthToken)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	token, _ := args["auth_token"].(string)

	var body json.RawMessage
	if err := c.apiCall("GET", "/api/v1/game/state", token, nil, &body); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (c *Client) handlePlayers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	token, _ := args["auth_token"].(string)

	var body json.RawMessage
	if err := c.apiCall("GET", "/api/v1/game/players", token, nil, &body); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	token, _ := args["auth_token"].(string)
	direction, _ := args["direction"].(string)

	code, ok := directionCode[direction]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q", direction)), nil
	}

	if err := c.apiCall("POST", "/api/v1/game/player/action", token, map[string]string{"move": code}, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("ok"), nil
}

// apiCall issues one REST request against the backing server, optionally
// bearing a token, and decodes the JSON response into result.
func (c *Client) apiCall(method, path, token string, body, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Message != "" {
			return fmt.Errorf("%s: %s", errResp.Code, errResp.Message)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}
