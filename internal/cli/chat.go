// Package cli implements the interactive chat surface: one free-text
// query in, one composite answer out, until the user quits.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mcpchat/internal/logger"
	"mcpchat/internal/orchestrator"
)

// QueryProcessor answers one free-text query; implemented by the
// orchestration loop.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, session orchestrator.ToolSession, query string) string
}

// ChatLoop reads queries line by line and prints each composite
// answer. "quit" and "exit" end the loop. A query is abandoned only
// between queries; an in-flight one always runs to completion.
type ChatLoop struct {
	loop    QueryProcessor
	session orchestrator.ToolSession
	log     *logger.Logger

	in  io.Reader
	out io.Writer
}

func NewChatLoop(loop QueryProcessor, session orchestrator.ToolSession, log *logger.Logger, in io.Reader, out io.Writer) *ChatLoop {
	return &ChatLoop{
		loop:    loop,
		session: session,
		log:     log,
		in:      in,
		out:     out,
	}
}

// Run blocks until the input is exhausted or the user quits
func (c *ChatLoop) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "MCP chat client started! Let's start chatting.")

	start := time.Now()
	queries := 0

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "\nQuery: ")

		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		if q := strings.ToLower(query); q == "quit" || q == "exit" {
			break
		}

		response := c.loop.ProcessQuery(ctx, c.session, query)
		queries++

		fmt.Fprintln(c.out, "\nResponse:")
		fmt.Fprintln(c.out, response)
	}

	c.log.SessionEnd(time.Since(start), queries)

	return scanner.Err()
}
