// Package entropy supplies the random sources that drive every probabilistic
// branch of the simulation. A seeded source makes a whole game replayable;
// the random.org client provides true randomness for live play and falls
// back to crypto/rand when the API is unavailable.
package entropy

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	mrand "math/rand"
	"net/http"
	"sync"
	"time"
)

// Source yields uniformly distributed floats in [0, 1).
type Source interface {
	Float() float64
}

// Seeded is a deterministic Source. The same seed always produces the same
// sequence of values.
type Seeded struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mrand.New(mrand.NewSource(seed))}
}

// Float returns the next value of the seeded sequence.
func (s *Seeded) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1), nil
}

// Crypto is a Source backed by crypto/rand.
type Crypto struct{}

// Float returns a crypto/rand float.
func (Crypto) Float() float64 { return cryptoRandFloat() }

// Client provides true random numbers from random.org with a local pool.
type Client struct {
	apiKey string
	client *http.Client

	mu   sync.Mutex
	pool []float64
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Float returns a random float64 in [0, 1). Uses the pool, refilling from
// random.org when low. Falls back to crypto/rand on API failure.
func (c *Client) Float() float64 {
	if c == nil {
		return cryptoRandFloat()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) < 10 {
		c.refill()
	}
	if len(c.pool) == 0 {
		return cryptoRandFloat()
	}

	val := c.pool[0]
	c.pool = c.pool[1:]
	return val
}

func (c *Client) refill() {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateDecimalFractions",
		"params": map[string]any{
			"apiKey":        c.apiKey,
			"n":             100,
			"decimalPlaces": 6,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		slog.Debug("random.org marshal failed", "error", err)
		return
	}

	resp, err := c.client.Post("https://api.random.org/json-rpc/4/invoke", "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Debug("random.org fetch failed", "error", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Result struct {
			Random struct {
				Data []float64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Debug("random.org parse failed", "error", err)
		return
	}
	if result.Error != nil {
		slog.Debug("random.org API error", "error", result.Error.Message)
		return
	}

	for _, v := range result.Result.Random.Data {
		if v >= 0 && v < 1 {
			c.pool = append(c.pool, v)
		}
	}
	slog.Debug("random.org pool refilled", "count", len(result.Result.Random.Data))
}

// Enabled reports whether the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

func cryptoRandFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0.5
	}
	// 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Chance reports whether a single roll lands under p.
func Chance(src Source, p float64) bool {
	return src.Float() < p
}

// Intn returns an int in [0, n). It returns 0 when n <= 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// IntBetween returns an int in [lo, hi], both inclusive.
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + Intn(src, hi-lo+1)
}

// Between returns a float in [lo, hi).
func Between(src Source, lo, hi float64) float64 {
	return lo + src.Float()*(hi-lo)
}

// Pick returns a random element of xs. xs must not be empty.
func Pick[T any](src Source, xs []T) T {
	return xs[Intn(src, len(xs))]
}

// Shuffle permutes xs in place (Fisher-Yates).
func Shuffle[T any](src Source, xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := Intn(src, i+1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// Reader adapts a Source to io.Reader, one byte per draw. It is how ids that
// need raw random bytes stay reproducible under a seeded source.
func Reader(src Source) io.Reader {
	return reader{src: src}
}

type reader struct{ src Source }

func (r reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(Intn(r.src, 256))
	}
	return len(p), nil
}
