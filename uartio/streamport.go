// uartio/streamport.go

package uartio

import (
	"io"
	"sync"
)

// StreamPort adapts a plain byte stream (a raw terminal, a pipe, a PTY) to
// the Port contract. A stream has no line rate, so Init and Reconfigure
// only gate delivery; the pump goroutines stand in for the RX and TX
// interrupts and run for the lifetime of the port.
type StreamPort struct {
	r io.Reader
	w io.Writer

	mu      sync.Mutex
	h       Handler
	up      bool
	started bool

	txCh chan byte
}

// NewStreamPort returns a port pumping bytes between r and w.
func NewStreamPort(r io.Reader, w io.Writer) *StreamPort {
	return &StreamPort{r: r, w: w, txCh: make(chan byte, 1)}
}

func (p *StreamPort) Init(h Handler, cfg Config) error {
	p.mu.Lock()
	p.h = h
	p.up = true
	start := !p.started
	p.started = true
	p.mu.Unlock()
	if start {
		go p.rxPump()
		go p.txPump()
	}
	return nil
}

func (p *StreamPort) Deinit() error {
	p.mu.Lock()
	p.up = false
	p.mu.Unlock()
	return nil
}

func (p *StreamPort) ReceiveByte() error { return nil }

func (p *StreamPort) TransmitByte(b byte) error {
	// Capacity 1 is enough: the driver keeps at most one byte in flight,
	// and the pump's OnTxDone callback queues the next one after the
	// previous write completed.
	p.txCh <- b
	return nil
}

func (p *StreamPort) AbortTransmit() error {
	select {
	case <-p.txCh:
	default:
	}
	return nil
}

func (p *StreamPort) AbortReceive() error { return nil }

func (p *StreamPort) rxPump() {
	var buf [1]byte
	for {
		n, err := p.r.Read(buf[:])
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		p.mu.Lock()
		h, up := p.h, p.up
		p.mu.Unlock()
		if up && h != nil {
			h.OnRxByte(buf[0])
		}
	}
}

func (p *StreamPort) txPump() {
	var buf [1]byte
	for b := range p.txCh {
		buf[0] = b
		if _, err := p.w.Write(buf[:]); err != nil {
			return
		}
		p.mu.Lock()
		h, up := p.h, p.up
		p.mu.Unlock()
		if up && h != nil {
			h.OnTxDone()
		}
	}
}
