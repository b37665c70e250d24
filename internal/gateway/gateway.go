// Package gateway wraps one language-model round trip with the retry
// policy the rest of the client relies on.
package gateway

import (
	"context"
	"time"

	"mcpchat/internal/llm"
	"mcpchat/internal/logger"
)

const (
	maxAttempts = 3
	retryDelay  = 2 * time.Second // Constant backoff, no exponential growth
)

// Gateway sends a conversation to the model backend and returns the
// generated text. Transport and backend failures are retried up to
// maxAttempts; when all attempts fail Generate returns the empty
// string. Callers must treat empty text as a soft failure - it is also
// what a genuinely empty completion looks like.
type Gateway struct {
	client   llm.Client
	baseSeed int
	log      *logger.Logger

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

func New(client llm.Client, baseSeed int, log *logger.Logger) *Gateway {
	return &Gateway{
		client:   client,
		baseSeed: baseSeed,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Generate performs up to maxAttempts sequential calls. Each attempt
// uses seed baseSeed+attempt so retries are not byte-identical yet
// remain reproducible for a fixed base seed. Failed attempts are
// logged and followed by a constant delay.
func (g *Gateway) Generate(ctx context.Context, messages []llm.Message) string {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := g.client.Chat(ctx, &llm.ChatRequest{
			Messages: messages,
			Seed:     g.baseSeed + attempt,
		})
		if err == nil {
			return resp.Message.Content
		}

		g.log.Error("model call failed (attempt %d/%d): %v", attempt+1, maxAttempts, err)
		g.sleep(retryDelay)
	}

	return ""
}
