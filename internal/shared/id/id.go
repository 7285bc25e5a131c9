// Package id generates identifiers for requests, worker messages, traces and
// websocket connections.
//
// Request, message and trace identifiers are prefixed ULIDs so they sort by
// creation time and read well in logs (req_01J..., msg_01J...). Connection
// identifiers are random UUIDs.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RequestID identifies an HTTP or CLI request.
type RequestID string

// MessageID identifies a worker protocol message.
type MessageID string

// TraceID identifies a trace.
type TraceID string

// SpanID identifies a span within a trace.
type SpanID string

// ConnectionID identifies a websocket connection.
type ConnectionID string

const (
	RequestPrefix = "req"
	MessagePrefix = "msg"
	TracePrefix   = "trace"
	SpanPrefix    = "span"
)

// Generator produces ULIDs. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand with monotonic
// ordering inside the same millisecond.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source,
// mainly for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate returns a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix returns "<prefix>_<ulid>".
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRequestID returns a new request identifier.
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewMessageID returns a new worker message identifier.
func NewMessageID() MessageID {
	return MessageID(Default().GenerateWithPrefix(MessagePrefix))
}

// NewTraceID returns a new trace identifier.
func NewTraceID() TraceID {
	return TraceID(Default().GenerateWithPrefix(TracePrefix))
}

// NewSpanID returns a new span identifier.
func NewSpanID() SpanID {
	return SpanID(Default().GenerateWithPrefix(SpanPrefix))
}

// NewConnectionID returns a random connection identifier.
func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}

func (id RequestID) String() string    { return string(id) }
func (id MessageID) String() string    { return string(id) }
func (id TraceID) String() string      { return string(id) }
func (id SpanID) String() string       { return string(id) }
func (id ConnectionID) String() string { return string(id) }

// IsValid reports whether s is a ULID, with or without a known prefix.
func IsValid(s string) bool {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Timestamp extracts the creation time of a (possibly prefixed) ULID.
func Timestamp(s string) (time.Time, error) {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
