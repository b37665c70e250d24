// Package orchestrator runs the query/tool/answer cycle: one model
// generation, an optional tool invocation chosen from the generated
// text, and a second generation folding the tool result back in.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mcpchat/internal/intent"
	"mcpchat/internal/llm"
	"mcpchat/internal/logger"
	"mcpchat/internal/mcp"

	"github.com/google/uuid"
)

// NotConnectedResult is returned when a query arrives without an
// active tool session, before any model call is made.
const NotConnectedResult = "Error: Not connected to an MCP server"

// segmentSeparator joins the answer segments with a blank line
const segmentSeparator = "\n\n"

// ToolSession is the external collaborator exposing the tool catalog
// and invocation. The loop treats it as an opaque RPC peer; connection
// lifecycle lives with the caller.
type ToolSession interface {
	Catalog() mcp.Catalog
	CallTool(ctx context.Context, name string, arguments map[string]any) (string, error)
}

// Generator is the language-model gateway contract. Empty text means
// either an empty completion or exhausted retries; both are soft
// failures here.
type Generator interface {
	Generate(ctx context.Context, messages []llm.Message) string
}

// Loop is the orchestration state machine. It holds no per-query
// state: the session is passed into each ProcessQuery call and every
// query owns its own message history.
type Loop struct {
	gen      Generator
	detector intent.Detector
	log      *logger.Logger
}

func New(gen Generator, detector intent.Detector, log *logger.Logger) *Loop {
	return &Loop{
		gen:      gen,
		detector: detector,
		log:      log,
	}
}

// ProcessQuery answers a single free-text query. It always returns
// text: every failure past the not-connected guard degrades to a
// visible segment of the composite answer rather than an error.
func (l *Loop) ProcessQuery(ctx context.Context, session ToolSession, query string) string {
	if session == nil {
		return NotConnectedResult
	}

	queryID := uuid.NewString()
	l.log.Debug("query %s: %q", queryID, query)

	catalog := session.Catalog()
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: l.systemPrompt(catalog)},
		{Role: llm.RoleUser, Content: query},
	}

	l.log.Info("Sending query to model...")
	first := l.gen.Generate(ctx, messages)
	if first != "" {
		l.log.ModelResponse(first)
	}

	segments := []string{first}

	req := l.detector.Detect(first, catalog)
	if req == nil {
		l.log.Debug("query %s: no tool requested", queryID)
		return joinSegments(segments)
	}

	toolResult, err := l.invokeTool(ctx, session, req)
	if err != nil {
		// The failure path deliberately skips the second generation:
		// the user sees the first answer plus the raw error.
		segments = append(segments, fmt.Sprintf("[Error with tool %s]: %v", req.ToolName, err))
		return joinSegments(segments)
	}

	segments = append(segments, fmt.Sprintf("[Tool: %s]\n%s", req.ToolName, toolResult))

	messages = append(messages,
		llm.Message{Role: llm.RoleAssistant, Content: first},
		llm.Message{
			Role: llm.RoleUser,
			Content: fmt.Sprintf("Here's the result from %s: %s. Please provide a final answer based on this information.",
				req.ToolName, toolResult),
		},
	)

	l.log.Info("Getting final response with tool results...")
	final := l.gen.Generate(ctx, messages)
	if final != "" {
		l.log.ModelResponse(final)
	}
	segments = append(segments, final)

	return joinSegments(segments)
}

// invokeTool calls the tool session with logging on both sides. A
// panicking session is converted into an error so the loop still
// reaches a composite answer.
func (l *Loop) invokeTool(ctx context.Context, session ToolSession, req *intent.Request) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool session panic: %v", r)
		}
	}()

	paramsJSON, _ := json.Marshal(req.Parameters)
	l.log.ToolCall(req.ToolName, string(paramsJSON))

	start := time.Now()
	result, err = session.CallTool(ctx, req.ToolName, req.Parameters)
	duration := time.Since(start)

	if err != nil {
		l.log.ToolResult(req.ToolName, false, err.Error(), duration)
		return "", err
	}

	l.log.ToolResult(req.ToolName, true, result, duration)
	return result, nil
}

// systemPrompt renders the catalog and the detector's tool-use
// contract into the system message for the first generation
func (l *Loop) systemPrompt(catalog mcp.Catalog) string {
	return "You are a helpful assistant that helps users with queries.\n" +
		l.detector.Instructions(catalog)
}

// joinSegments concatenates the non-empty segments with blank lines
func joinSegments(segments []string) string {
	nonEmpty := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, segmentSeparator)
}
