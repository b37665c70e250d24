package mcp

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Session wraps the official MCP SDK client over a stdio-spawned server.
// The tool catalog is fetched once at connect time and never refreshed.
type Session struct {
	name    string
	client  *mcp.Client
	session *mcp.ClientSession
	catalog Catalog
}

// Connect spawns the server command, performs the MCP handshake and
// fetches the tool catalog
func Connect(ctx context.Context, name string, command string, args []string, env map[string]string) (*Session, error) {
	cmd := exec.Command(command, args...)

	if len(env) > 0 {
		cmd.Env = append(cmd.Environ(), formatEnvVars(env)...)
	}

	impl := &mcp.Implementation{
		Name:    "mcpchat",
		Version: "1.0.0",
	}
	client := mcp.NewClient(impl, nil)

	transport := &mcp.CommandTransport{Command: cmd}

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server: %w", err)
	}

	var catalog Catalog
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			session.Close()
			return nil, fmt.Errorf("failed to list tools: %w", err)
		}
		catalog = append(catalog, newDescriptor(tool))
	}

	return &Session{
		name:    name,
		client:  client,
		session: session,
		catalog: catalog,
	}, nil
}

// formatEnvVars converts env map to KEY=VALUE slice
func formatEnvVars(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for key, value := range env {
		result = append(result, fmt.Sprintf("%s=%s", key, value))
	}
	return result
}

// Name returns the server name
func (s *Session) Name() string {
	return s.name
}

// Catalog returns the tool list fetched at connect time
func (s *Session) Catalog() Catalog {
	return s.catalog
}

// CallTool executes a tool and flattens its content to text.
// A result marked IsError by the server is returned as an error.
func (s *Session) CallTool(ctx context.Context, toolName string, arguments map[string]any) (string, error) {
	params := &mcp.CallToolParams{
		Name:      toolName,
		Arguments: arguments,
	}

	result, err := s.session.CallTool(ctx, params)
	if err != nil {
		return "", fmt.Errorf("call tool request failed: %w", err)
	}

	if result.IsError {
		return "", fmt.Errorf("tool %s failed: %s", toolName, formatContent(result.Content))
	}

	return formatContent(result.Content), nil
}

// Close shuts down the session and the spawned server
func (s *Session) Close() error {
	if s.session != nil {
		return s.session.Close()
	}
	return nil
}
