package monitor

import (
	"log"
	"sync"
	"time"

	"github.com/jkosta95/recipe-app-api/internal/readiness"
)

type Monitor struct {
	provider     readiness.Provider
	interval     time.Duration
	probeTimeout time.Duration

	mu       sync.RWMutex
	last     *readiness.ConnectionProbe
	respTime time.Duration
	checks   int

	done     chan struct{}
	stopOnce sync.Once
}

func NewMonitor(provider readiness.Provider, interval time.Duration) *Monitor {
	probeTimeout := interval
	if probeTimeout > 5*time.Second {
		probeTimeout = 5 * time.Second
	}
	return &Monitor{
		provider:     provider,
		interval:     interval,
		probeTimeout: probeTimeout,
		done:         make(chan struct{}),
	}
}

// Run probes the datastore every interval until Stop is called.
func (m *Monitor) Run() {
	//* ticker
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check()

	//* probe datastore every tick
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.Check()
		}
	}
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
}

// Check runs one probe and records the result.
func (m *Monitor) Check() readiness.ConnectionProbe {
	m.mu.Lock()
	m.checks++
	attempt := m.checks
	wasUp := m.last == nil || m.last.OK()
	m.mu.Unlock()

	probe, respTime := probeDatastore(m.provider, attempt, m.probeTimeout)

	if !probe.OK() && wasUp {
		log.Printf("WARN: database unavailable, err=%v\n", probe.Err)
	}
	if probe.OK() && !wasUp {
		log.Println("database available again")
	}

	m.mu.Lock()
	m.last = &probe
	m.respTime = respTime
	m.mu.Unlock()

	return probe
}

// Health reports the latest recorded probe.
func (m *Monitor) Health() Health {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.last == nil {
		return Health{Status: StatusUnknown}
	}

	details := map[string]any{
		"checked_at":    m.last.At.Format(time.RFC3339),
		"response_time": m.respTime.String(),
		"checks":        m.checks,
	}
	if !m.last.OK() {
		details["error"] = m.last.Err.Error()
		return Health{Status: StatusDown, Details: details}
	}
	return Health{Status: StatusUp, Details: details}
}
