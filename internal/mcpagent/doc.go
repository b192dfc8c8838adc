// Package mcpagent exposes the game's REST API as Model Context Protocol
// tools, so an AI agent can play a dog directly instead of issuing raw
// HTTP requests.
//
// Grounded on the teacher's transport/mcp package (client.go): the same
// thin-client shape (a Client wrapping a *server.MCPServer whose tools
// all proxy to the REST API over baseURL via a shared apiCall helper),
// generalized from the teacher's single-player Tesla session tools to
// this game's map/join/state/action surface and bearer-token auth model.
package mcpagent
