package genai

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

// ErrRateLimitExceeded indicates all retry attempts were exhausted on rate limiting
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// maxAttempts is the number of generation attempts before giving up on
// a rate-limited backend. Attempt numbering starts at 0.
const maxAttempts = 3

// Backend is the single prompt-to-text contract the Gateway wraps.
// Rate limiting must surface as an error matching ErrRateLimited.
type Backend interface {
	Complete(prompt string) (string, error)
}

// Gateway is the sole point of contact with the generative backend.
// It owns the retry/backoff policy: every other component goes through
// Generate and never talks to the backend directly.
type Gateway struct {
	backend Backend

	// sleep and jitter are injectable for tests
	sleep  func(time.Duration)
	jitter func() float64
}

// NewGateway creates a Gateway around the given backend
func NewGateway(backend Backend) *Gateway {
	return &Gateway{
		backend: backend,
		sleep:   time.Sleep,
		jitter:  rand.Float64,
	}
}

// Generate sends the prompt to the backend, retrying on rate limiting with
// exponential backoff and jitter. On a rate-limit rejection at attempt n the
// call sleeps 2^n + uniform(0,1) seconds before retrying; any other fault
// propagates immediately. The returned text is trimmed of surrounding
// whitespace.
func (g *Gateway) Generate(prompt string) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := g.backend.Complete(prompt)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return "", err
		}
		g.sleep(backoffDelay(attempt, g.jitter()))
	}
	return "", ErrRateLimitExceeded
}

// backoffDelay computes 2^attempt + jitter seconds, jitter in [0, 1)
func backoffDelay(attempt int, jitter float64) time.Duration {
	base := float64(int(1) << uint(attempt))
	return time.Duration((base + jitter) * float64(time.Second))
}
