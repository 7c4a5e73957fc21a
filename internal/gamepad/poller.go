package gamepad

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soar/inputnav/internal/nav"
)

// DefaultPollInterval is roughly one frame at 60Hz.
const DefaultPollInterval = 16 * time.Millisecond

// Sink receives detector output. Implementations hand values to the UI thread
// and must not block.
type Sink interface {
	Intent(intent nav.Intent)
	ConnectionChanged(ev ConnectionEvent)
}

// Poller drives a Detector from a ticker on its own goroutine.
type Poller struct {
	backend  Backend
	detector *Detector
	sink     Sink
	interval time.Duration

	inFlight atomic.Bool
	mu       sync.Mutex // held for the duration of a poll

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewPoller(backend Backend, decoder *Decoder, sink Sink, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		backend:  backend,
		detector: NewDetector(backend, decoder),
		sink:     sink,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll goroutine. Calling it more than once has no effect.
func (p *Poller) Start() {
	p.startOnce.Do(func() {
		go p.run()
	})
}

func (p *Poller) run() {
	defer close(p.done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Debug("Gamepad poller started", "interval", p.interval)
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.Tick()
			// Drop ticks that piled up while a slow poll ran.
			select {
			case <-ticker.C:
			default:
			}
		}
	}
}

// Tick runs one poll unless another is already running, in which case it
// returns false without waiting.
func (p *Poller) Tick() bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer p.inFlight.Store(false)

	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.stop:
		return false
	default:
	}

	u := p.detector.Tick()
	if u.Change != nil {
		p.sink.ConnectionChanged(*u.Change)
	}
	for _, intent := range u.Intents {
		p.sink.Intent(intent)
	}
	return true
}

// Stop halts polling, waits for a running poll and closes the backend. It is
// safe to call more than once and before Start.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
		started := true
		p.startOnce.Do(func() { started = false })
		if started {
			<-p.done
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if err := p.backend.Close(); err != nil {
			slog.Warn("Failed to close gamepad backend", "error", err)
		}
		slog.Debug("Gamepad poller stopped")
	})
}
