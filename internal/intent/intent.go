// Package intent detects tool invocation requests inside free-form
// model output. Backends without native function calling only signal
// tool use through text, so detection is heuristic and pluggable.
package intent

import (
	"fmt"

	"mcpchat/internal/config"
	"mcpchat/internal/logger"
	"mcpchat/internal/mcp"
)

// Request is a parsed tool invocation: which catalog tool to call and
// with what typed parameters. Produced transiently per query.
type Request struct {
	ToolName   string
	Parameters map[string]any
}

// Detector scans model text for a tool request against a catalog.
// A nil result means no tool was requested - a normal, common outcome.
type Detector interface {
	// Detect returns the parsed request, or nil when the text contains
	// no recognizable request for a cataloged tool.
	Detect(text string, catalog mcp.Catalog) *Request

	// Instructions renders the tool-use contract this detector expects
	// the model to follow, for inclusion in the system prompt.
	Instructions(catalog mcp.Catalog) string
}

// NewDetector builds the detector for the configured mode
func NewDetector(mode config.DetectorMode, log *logger.Logger) (Detector, error) {
	switch mode {
	case config.DetectorSubstring:
		return &SubstringDetector{}, nil
	case config.DetectorTagged:
		return &TaggedDetector{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown detector mode: %s", mode)
	}
}
