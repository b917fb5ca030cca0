package widgets

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PollInterval is how often the poller samples its source.
const PollInterval = 5 * time.Second

// Network states.
const (
	NetworkConnected    = "Connected"
	NetworkDisconnected = "Disconnected"
)

// Metrics is one sample of system usage. Percentages are whole numbers.
type Metrics struct {
	CPU         int    `json:"cpu"`
	Memory      int    `json:"memory"`
	Battery     int    `json:"battery"`
	Temperature int    `json:"temperature"`
	Network     string `json:"network"`
}

// InitialMetrics is shown before the first sample arrives.
var InitialMetrics = Metrics{
	CPU:         23,
	Memory:      45,
	Battery:     100,
	Temperature: 62,
	Network:     NetworkConnected,
}

// MetricsSource produces usage samples.
type MetricsSource interface {
	Sample(ctx context.Context) (Metrics, error)
}

// RandomSource produces plausible fake readings.
type RandomSource struct {
	mu      sync.Mutex
	rng     *rand.Rand
	battery float64
}

// NewRandomSource returns a source whose readings are determined by seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		rng:     rand.New(rand.NewSource(seed)),
		battery: 100,
	}
}

// Sample implements MetricsSource. The battery drains a little on every
// call.
func (s *RandomSource) Sample(context.Context) (Metrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.battery = math.Max(0, s.battery-s.rng.Float64()*0.2)
	network := NetworkConnected
	if s.rng.Float64() < 0.1 {
		network = NetworkDisconnected
	}
	return Metrics{
		CPU:         10 + s.rng.Intn(60),
		Memory:      30 + s.rng.Intn(40),
		Battery:     int(math.Floor(s.battery)),
		Temperature: 50 + s.rng.Intn(20),
		Network:     network,
	}, nil
}

// Poller samples a MetricsSource every PollInterval.
type Poller struct {
	task

	source   MetricsSource
	log      logrus.FieldLogger
	interval time.Duration
	onSample func(Metrics)
}

// NewPoller returns a poller passing every successful sample to onSample.
// Failed samples are logged and skipped.
func NewPoller(source MetricsSource, log logrus.FieldLogger, onSample func(Metrics)) *Poller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{
		source:   source,
		log:      log,
		interval: PollInterval,
		onSample: onSample,
	}
}

// Start begins polling. It has no effect on a running poller.
func (p *Poller) Start(ctx context.Context) {
	p.start(ctx, p.interval, p.poll)
}

// Stop halts polling and waits for a sample in progress to finish.
func (p *Poller) Stop() {
	p.stop()
}

// Running reports whether the poller is started.
func (p *Poller) Running() bool {
	return p.running()
}

func (p *Poller) poll(ctx context.Context) {
	m, err := p.source.Sample(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.WithError(err).Warn("sample system metrics")
		}
		return
	}
	p.onSample(m)
}
