package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDescriptor describes one tool exposed by the MCP server.
// Immutable once built from the session's tool list.
type ToolDescriptor struct {
	Name        string
	Description string
	// Params maps parameter name to its JSON schema type hint
	// ("integer", "number", "string", ...). Empty when the server
	// declares no input schema.
	Params map[string]string
}

// Catalog is the session-scoped list of available tools, in server order.
type Catalog []ToolDescriptor

// newDescriptor converts an SDK tool into a ToolDescriptor
func newDescriptor(t *mcp.Tool) ToolDescriptor {
	return ToolDescriptor{
		Name:        t.Name,
		Description: t.Description,
		Params:      schemaParams(t.InputSchema),
	}
}

// schemaParams extracts parameter name → type hint from a JSON schema.
// The InputSchema is of type `any` in the SDK, so it is round-tripped
// through JSON into a generic map first.
func schemaParams(schema any) map[string]string {
	if schema == nil {
		return nil
	}

	m, ok := schema.(map[string]any)
	if !ok {
		data, err := json.Marshal(schema)
		if err != nil {
			return nil
		}
		if err := json.Unmarshal(data, &m); err != nil {
			return nil
		}
	}

	props, ok := m["properties"].(map[string]any)
	if !ok {
		return nil
	}

	params := make(map[string]string, len(props))
	for name, raw := range props {
		if prop, ok := raw.(map[string]any); ok {
			if typ, ok := prop["type"].(string); ok {
				params[name] = typ
				continue
			}
		}
		params[name] = ""
	}
	return params
}

// Find returns the descriptor whose name matches case-insensitively
func (c Catalog) Find(name string) (ToolDescriptor, bool) {
	for _, t := range c {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return ToolDescriptor{}, false
}

// PromptLines renders the catalog as "- name: description" lines for
// inclusion in the system prompt
func (c Catalog) PromptLines() string {
	lines := make([]string, 0, len(c))
	for _, t := range c {
		lines = append(lines, fmt.Sprintf("- %s: %s", t.Name, t.Description))
	}
	return strings.Join(lines, "\n")
}
