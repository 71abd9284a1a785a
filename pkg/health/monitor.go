// Package health runs named dependency checks on demand and in the
// background.
package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "healthy":
		*s = StatusHealthy
	case "unhealthy":
		*s = StatusUnhealthy
	default:
		*s = StatusUnknown
	}
	return nil
}

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// Result is the latest outcome of one check.
type Result struct {
	Name         string        `json:"name"`
	Critical     bool          `json:"critical"`
	Status       Status        `json:"status"`
	Latency      time.Duration `json:"latency_ns"`
	LastCheck    time.Time     `json:"last_check"`
	Error        string        `json:"error,omitempty"`
	CheckCount   int           `json:"check_count"`
	FailureCount int           `json:"failure_count"`
}

type check struct {
	name     string
	critical bool
	ping     PingFunc
}

// Monitor holds registered checks and their latest results. A failing
// critical check makes the monitor unhealthy.
type Monitor struct {
	mu       sync.RWMutex
	checks   []check
	results  map[string]*Result
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stop    chan struct{}
	running bool
}

func NewMonitor(interval, timeout time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Monitor{
		results:  make(map[string]*Result),
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

// Register adds a named check. Registering a name twice replaces the check.
func (m *Monitor) Register(name string, critical bool, ping PingFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.checks {
		if c.name == name {
			m.checks[i] = check{name: name, critical: critical, ping: ping}
			return
		}
	}
	m.checks = append(m.checks, check{name: name, critical: critical, ping: ping})

	m.logger.Info("Registered health check",
		zap.String("name", name),
		zap.Bool("critical", critical),
	)
}

// CheckAll runs every check now and reports whether all critical checks
// passed, with the results in registration order.
func (m *Monitor) CheckAll(ctx context.Context) (bool, []Result) {
	m.mu.RLock()
	checks := append([]check(nil), m.checks...)
	m.mu.RUnlock()

	healthy := true
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		res := m.run(ctx, c)
		if c.critical && res.Status != StatusHealthy {
			healthy = false
		}
		results = append(results, res)
	}
	return healthy, results
}

func (m *Monitor) run(ctx context.Context, c check) Result {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := m.now()
	err := c.ping(ctx)

	res := Result{
		Name:      c.name,
		Critical:  c.critical,
		Status:    StatusHealthy,
		Latency:   m.now().Sub(start),
		LastCheck: start,
	}
	if err != nil {
		res.Status = StatusUnhealthy
		res.Error = err.Error()
		m.logger.Warn("Health check failed",
			zap.String("name", c.name),
			zap.Bool("critical", c.critical),
			zap.Duration("latency", res.Latency),
			zap.Error(err),
		)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.results[c.name]; ok {
		res.CheckCount = prev.CheckCount
		res.FailureCount = prev.FailureCount
	}
	res.CheckCount++
	if err != nil {
		res.FailureCount++
	}
	m.results[c.name] = &res
	return res
}

// Result returns the latest result of the named check.
func (m *Monitor) Result(name string) (Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, ok := m.results[name]
	if !ok {
		return Result{}, false
	}
	return *res, true
}

// Start runs all checks every interval until Stop is called. A non-positive
// interval disables background checks.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running || m.interval <= 0 {
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	go m.loop(m.stop)
}

func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	close(m.stop)
}

func (m *Monitor) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stop
		cancel()
	}()

	m.CheckAll(ctx)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.CheckAll(ctx)
		}
	}
}
