package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// formatContent converts an MCP content array to plain text. The
// orchestration layer treats tool output as an opaque blob, so
// everything collapses to strings here.
func formatContent(content []mcp.Content) string {
	var parts []string

	for _, item := range content {
		switch c := item.(type) {
		case *mcp.TextContent:
			parts = append(parts, c.Text)

		case *mcp.ImageContent:
			parts = append(parts, fmt.Sprintf("[Image: %s]", c.MIMEType))

		case *mcp.AudioContent:
			parts = append(parts, fmt.Sprintf("[Audio: %s]", c.MIMEType))

		default:
			// Unknown content type - try to marshal to JSON
			data, err := json.Marshal(item)
			if err != nil {
				parts = append(parts, fmt.Sprintf("[Unknown content type: %T]", item))
			} else {
				parts = append(parts, string(data))
			}
		}
	}

	return strings.Join(parts, "\n")
}
