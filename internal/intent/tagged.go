package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mcpchat/internal/logger"
	"mcpchat/internal/mcp"
)

// Marker tokens the model is instructed to emit on their own lines
const (
	toolMarker   = "TOOL_REQUEST:"
	paramsMarker = "PARAMETERS:"
)

// paramPattern extracts comma-separated key=value pairs
var paramPattern = regexp.MustCompile(`(\w+)=([^,]+)`)

// TaggedDetector expects the model to emit a TOOL_REQUEST: line naming
// the tool and a PARAMETERS: line carrying comma-separated key=value
// pairs. Values coerce to int, then float; quoted values stay strings.
// An unquoted value that fails numeric coercion is dropped with a
// warning and parsing continues with the remaining keys.
type TaggedDetector struct {
	log *logger.Logger
}

func (d *TaggedDetector) Detect(text string, catalog mcp.Catalog) *Request {
	if !strings.Contains(text, toolMarker) {
		return nil
	}

	var toolName string
	parameters := map[string]any{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, toolMarker):
			toolName = strings.TrimSpace(strings.TrimPrefix(line, toolMarker))
		case strings.HasPrefix(line, paramsMarker):
			d.parseParams(strings.TrimPrefix(line, paramsMarker), parameters)
		}
	}

	if toolName == "" {
		return nil
	}

	// An unknown name is not an error; the loop must never invoke a
	// tool the catalog does not list.
	tool, ok := catalog.Find(toolName)
	if !ok {
		return nil
	}

	return &Request{
		ToolName:   tool.Name,
		Parameters: parameters,
	}
}

// parseParams fills out from key=value pairs, coercing each value
func (d *TaggedDetector) parseParams(paramsStr string, out map[string]any) {
	for _, match := range paramPattern.FindAllStringSubmatch(paramsStr, -1) {
		key, raw := match[1], strings.TrimSpace(match[2])

		value, err := coerceValue(raw)
		if err != nil {
			if d.log != nil {
				d.log.Warn("dropping parameter %s: %v", key, err)
			}
			continue
		}
		out[key] = value
	}
}

// coerceValue types a raw parameter value. Quoted values are strings
// with the quotes stripped. Unquoted values must parse as int (when
// they contain no decimal point) or float.
func coerceValue(raw string) (any, error) {
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') || (raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			return raw[1 : len(raw)-1], nil
		}
	}

	if !strings.Contains(raw, ".") {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q to integer", raw)
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot coerce %q to number", raw)
	}
	return f, nil
}

func (d *TaggedDetector) Instructions(catalog mcp.Catalog) string {
	return fmt.Sprintf(`You have access to the following tools:
%s

If you need to use any of these tools to answer the user's question, please respond with:
TOOL_REQUEST: <tool_name>
PARAMETERS: <key1>=<value1>, <key2>=<value2>

Otherwise, provide a direct answer to the user's question.`, catalog.PromptLines())
}
