// uartio/loopport.go

package uartio

import (
	"errors"
	"sync"
)

// LoopPort is an in-memory Port for tests and scripted sessions. Reception
// is always armed: Inject delivers bytes straight to the handler from the
// caller's goroutine, standing in for the RX interrupt. Transmit completes
// synchronously, so a full TX chain unwinds before TransmitByte returns.
type LoopPort struct {
	mu   sync.Mutex
	h    Handler
	cfg  Config
	up   bool
	echo bool
	out  []byte

	initCalls    int
	failNextInit bool
}

var errPortDown = errors.New("uartio: port not initialised")

// NewLoopPort returns an idle loopback port.
func NewLoopPort() *LoopPort { return &LoopPort{} }

// SetEcho makes transmitted bytes reappear on the receive side, emulating a
// looped-back cable.
func (p *LoopPort) SetEcho(on bool) {
	p.mu.Lock()
	p.echo = on
	p.mu.Unlock()
}

// FailNextInit makes the next Init call fail once. Used to exercise the
// driver's last-good-configuration recovery.
func (p *LoopPort) FailNextInit() {
	p.mu.Lock()
	p.failNextInit = true
	p.mu.Unlock()
}

func (p *LoopPort) Init(h Handler, cfg Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initCalls++
	if p.failNextInit {
		p.failNextInit = false
		return errors.New("uartio: init failed (injected)")
	}
	p.h = h
	p.cfg = cfg
	p.up = true
	return nil
}

func (p *LoopPort) Deinit() error {
	p.mu.Lock()
	p.up = false
	p.mu.Unlock()
	return nil
}

// ReceiveByte arms reception. The loopback is always armed, so this only
// validates that the port is up.
func (p *LoopPort) ReceiveByte() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.up {
		return errPortDown
	}
	return nil
}

func (p *LoopPort) TransmitByte(b byte) error {
	p.mu.Lock()
	if !p.up {
		p.mu.Unlock()
		return errPortDown
	}
	p.out = append(p.out, b)
	h, echo := p.h, p.echo
	p.mu.Unlock()

	// Callbacks run without the port lock held: OnTxDone re-enters
	// TransmitByte for the next queued byte.
	if echo {
		h.OnRxByte(b)
	}
	h.OnTxDone()
	return nil
}

func (p *LoopPort) AbortTransmit() error { return nil }
func (p *LoopPort) AbortReceive() error  { return nil }

// Inject delivers p to the receive side as if each byte arrived over the
// wire. Must not be called while the driver is reconfiguring.
func (p *LoopPort) Inject(data []byte) {
	p.mu.Lock()
	h, up := p.h, p.up
	p.mu.Unlock()
	if !up || h == nil {
		return
	}
	for _, b := range data {
		h.OnRxByte(b)
	}
}

// Output returns everything transmitted so far and clears the record.
func (p *LoopPort) Output() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.out
	p.out = nil
	return out
}

// InitCalls returns how many times Init has run.
func (p *LoopPort) InitCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initCalls
}

// LastConfig returns the configuration from the most recent successful Init.
func (p *LoopPort) LastConfig() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}
