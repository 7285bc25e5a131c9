package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// MaxProbes is the number of trial calls let through while half-open;
	// that many consecutive successes close the breaker again.
	MaxProbes uint32
	// Window is how long closed-state counts accumulate before resetting.
	Window time.Duration
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
	// ShouldTrip decides, after a failure in closed state, whether to open.
	ShouldTrip func(counts Counts) bool
	// IsFailure classifies call errors. Errors it rejects count as success,
	// so caller mistakes such as a 4xx do not trip the breaker.
	IsFailure func(err error) bool
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from, to State)

	now func() time.Time
}

// Counts holds the statistics for the current window
type Counts struct {
	Requests             uint32
	Successes            uint32
	Failures             uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// DefaultSettings trips after five consecutive failures and probes once
// after a 30 second cooldown.
func DefaultSettings() Settings {
	return Settings{
		MaxProbes: 1,
		Window:    time.Minute,
		Cooldown:  30 * time.Second,
		ShouldTrip: func(c Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		IsFailure: func(err error) bool { return err != nil },
	}
}

// Breaker implements the circuit breaker pattern
type Breaker struct {
	name     string
	settings Settings

	mu         sync.Mutex
	state      State
	generation uint64
	counts     Counts
	deadline   time.Time
}

// New creates a circuit breaker; zero-valued settings take their defaults.
func New(name string, settings Settings) *Breaker {
	def := DefaultSettings()
	if settings.MaxProbes == 0 {
		settings.MaxProbes = def.MaxProbes
	}
	if settings.Window <= 0 {
		settings.Window = def.Window
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = def.Cooldown
	}
	if settings.ShouldTrip == nil {
		settings.ShouldTrip = def.ShouldTrip
	}
	if settings.IsFailure == nil {
		settings.IsFailure = def.IsFailure
	}
	if settings.now == nil {
		settings.now = time.Now
	}

	b := &Breaker{name: name, settings: settings}
	b.deadline = settings.now().Add(settings.Window)
	return b
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.advance(b.settings.now())
}

// Counts returns a copy of the counts for the current window
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Do runs fn if the breaker admits it. A cancelled ctx is reported without
// calling fn and is not counted against the dependency.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gen, err := b.admit()
	if err != nil {
		return err
	}

	completed := false
	defer func() {
		if !completed {
			b.record(gen, false)
		}
	}()

	err = fn(ctx)
	completed = true

	failed := b.settings.IsFailure(err) && !errors.Is(err, context.Canceled)
	b.record(gen, !failed)
	return err
}

func (b *Breaker) admit() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.advance(b.settings.now()) {
	case StateOpen:
		return b.generation, ErrCircuitOpen
	case StateHalfOpen:
		if b.counts.Requests >= b.settings.MaxProbes {
			return b.generation, ErrTooManyRequests
		}
	}

	b.counts.Requests++
	return b.generation, nil
}

func (b *Breaker) record(gen uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.settings.now()
	state := b.advance(now)
	if gen != b.generation {
		// The call started in an earlier window or state.
		return
	}

	if success {
		b.counts.Successes++
		b.counts.ConsecutiveSuccesses++
		b.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxProbes {
			b.transition(StateClosed, now)
		}
		return
	}

	b.counts.Failures++
	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccesses = 0
	switch state {
	case StateClosed:
		if b.settings.ShouldTrip(b.counts) {
			b.transition(StateOpen, now)
		}
	case StateHalfOpen:
		b.transition(StateOpen, now)
	}
}

// advance applies time-driven transitions and returns the resulting state.
func (b *Breaker) advance(now time.Time) State {
	switch b.state {
	case StateClosed:
		if now.After(b.deadline) {
			b.newGeneration(now.Add(b.settings.Window))
		}
	case StateOpen:
		if now.After(b.deadline) {
			b.transition(StateHalfOpen, now)
		}
	}
	return b.state
}

func (b *Breaker) transition(to State, now time.Time) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to

	switch to {
	case StateClosed:
		b.newGeneration(now.Add(b.settings.Window))
	case StateOpen:
		b.newGeneration(now.Add(b.settings.Cooldown))
	case StateHalfOpen:
		b.newGeneration(time.Time{})
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}

func (b *Breaker) newGeneration(deadline time.Time) {
	b.generation++
	b.counts = Counts{}
	b.deadline = deadline
}
