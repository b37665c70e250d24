package intent

import (
	"fmt"
	"strings"

	"mcpchat/internal/mcp"
)

// SubstringDetector treats any case-insensitive mention of a tool's
// name in the model text as a request to use it. The first matching
// catalog entry wins and no parameters are extracted.
//
// This is lossy by design: it exists for backends that cannot be
// coaxed into structured output. It over-triggers when a tool name
// appears incidentally and under-triggers when the model paraphrases
// the name.
type SubstringDetector struct{}

func (d *SubstringDetector) Detect(text string, catalog mcp.Catalog) *Request {
	lower := strings.ToLower(text)

	for _, tool := range catalog {
		if strings.Contains(lower, strings.ToLower(tool.Name)) {
			return &Request{
				ToolName:   tool.Name,
				Parameters: map[string]any{},
			}
		}
	}

	return nil
}

func (d *SubstringDetector) Instructions(catalog mcp.Catalog) string {
	return fmt.Sprintf(`You have access to the following tools:
%s

If you need to use any of these tools to answer the user's question, please specify which tool you want to use and what parameters you need.`, catalog.PromptLines())
}
