package readiness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	msgWaiting     = "Waiting for database. . ."
	msgUnavailable = "Database unavailable, waiting %s"
	msgAvailable   = "Database available!"
)

// Provider checks the default datastore connection.
type Provider interface {
	Probe(ctx context.Context) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) error

// Probe implements Provider for ProviderFunc.
func (fn ProviderFunc) Probe(ctx context.Context) error {
	return fn(ctx)
}

// Sleeper suspends the caller between attempts.
type Sleeper func(ctx context.Context, d time.Duration) error

// State of the gate during a single Run.
type State int

const (
	StateWaiting State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateReady:
		return "READY"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ConnectionProbe is the outcome of one attempt.
type ConnectionProbe struct {
	Attempt int
	Err     error
	At      time.Time
}

// OK reports whether the attempt reached the datastore.
func (p ConnectionProbe) OK() bool {
	return p.Err == nil
}

// Gate blocks until the provider reports the datastore is reachable.
type Gate struct {
	provider Provider
	policy   Policy
	out      io.Writer
	sleep    Sleeper
	observe  func(ConnectionProbe)
	now      func() time.Time
}

type Option func(*Gate)

// WithOutput sets where progress lines are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(g *Gate) {
		g.out = w
	}
}

// WithSleeper replaces the blocking delay between attempts. A nil sleeper
// keeps Sleep.
func WithSleeper(s Sleeper) Option {
	return func(g *Gate) {
		g.sleep = s
	}
}

// WithObserver registers a callback invoked after every probe.
func WithObserver(fn func(ConnectionProbe)) Option {
	return func(g *Gate) {
		g.observe = fn
	}
}

func New(provider Provider, policy Policy, opts ...Option) *Gate {
	g := &Gate{
		provider: provider,
		policy:   policy,
		out:      os.Stdout,
		sleep:    Sleep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.out == nil {
		g.out = io.Discard
	}
	if g.sleep == nil {
		g.sleep = Sleep
	}
	return g
}

// Run probes until the datastore is available. Every call starts a fresh
// probe sequence. Probe errors other than ErrConnectionUnavailable are
// returned as is.
func (g *Gate) Run(ctx context.Context) error {
	if g.provider == nil {
		return errors.New("readiness provider is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(g.out, msgWaiting)

	state := StateWaiting
	for attempt := 1; state == StateWaiting; attempt++ {
		probe := ConnectionProbe{
			Attempt: attempt,
			Err:     g.provider.Probe(ctx),
			At:      g.now(),
		}
		if g.observe != nil {
			g.observe(probe)
		}

		if probe.OK() {
			state = StateReady
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("wait for database: %w", err)
		}
		if !errors.Is(probe.Err, ErrConnectionUnavailable) {
			return fmt.Errorf("probe database: %w", probe.Err)
		}
		if g.policy.Bounded() && attempt >= g.policy.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempt, probe.Err)
		}

		fmt.Fprintf(g.out, msgUnavailable+"\n", describeDelay(g.policy.Delay))
		if err := g.sleep(ctx, g.policy.Delay); err != nil {
			return fmt.Errorf("wait for database: %w", err)
		}
	}

	fmt.Fprintln(g.out, msgAvailable)
	return nil
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
