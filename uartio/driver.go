// uartio/driver.go

// Package uartio bridges an interrupt-driven byte peripheral to buffered
// byte streams. A Driver owns one RX and one TX ring; the peripheral side
// pushes and pops exactly one end of each ring, the task side the other.
// The driver's mutex stands in for the interrupt-masked window a firmware
// implementation would use around multi-field ring updates; nothing inside
// it blocks or allocates.
package uartio

import (
	"errors"
	"sync"

	"github.com/s-rincon/fw-stm32-uart-shell/ringbuf"
)

const (
	rxBufferSize = 256
	txBufferSize = 256
)

var (
	ErrBufferEmpty = errors.New("UART buffer empty")
	ErrNoPort      = errors.New("uartio: nil port")
	ErrInvalidBaud = errors.New("uartio: invalid baud rate")
)

// Driver is an asynchronous byte transport over a Port. Create one per
// channel with New; a Driver lives for the process lifetime.
type Driver struct {
	port Port
	cfg  Config

	mu     sync.Mutex
	rx     *ringbuf.Ring
	tx     *ringbuf.Ring
	txBusy bool

	notify   chan struct{} // coalesced RX readiness
	txNotify chan struct{} // coalesced TX drain
}

// New initialises the port at cfg and arms reception. A zero BaudRate
// defaults to 115200.
func New(port Port, cfg Config) (*Driver, error) {
	if port == nil {
		return nil, ErrNoPort
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 115200
	}
	rx, _ := ringbuf.New(make([]byte, rxBufferSize))
	tx, _ := ringbuf.New(make([]byte, txBufferSize))
	d := &Driver{
		port:     port,
		cfg:      cfg,
		rx:       rx,
		tx:       tx,
		notify:   make(chan struct{}, 1),
		txNotify: make(chan struct{}, 1),
	}
	if err := port.Init(d, cfg); err != nil {
		return nil, err
	}
	if err := port.ReceiveByte(); err != nil {
		return nil, err
	}
	return d, nil
}

// OnRxByte implements Handler. It runs in the port's delivery context:
// push the byte, re-arm the next receive, wake any blocked reader.
func (d *Driver) OnRxByte(b byte) {
	d.mu.Lock()
	d.rx.Push(b)
	d.mu.Unlock()
	_ = d.port.ReceiveByte()
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// OnTxDone implements Handler. Pops the next byte and keeps the transmit
// chain going; when the ring is empty the chain stops and resumes lazily on
// the next Send.
func (d *Driver) OnTxDone() {
	d.mu.Lock()
	b, ok := d.tx.Pop()
	if !ok {
		d.txBusy = false
	}
	d.mu.Unlock()
	if ok {
		if err := d.port.TransmitByte(b); err != nil {
			// The popped byte is sacrificed; the next Send restarts
			// the chain.
			d.mu.Lock()
			d.txBusy = false
			d.mu.Unlock()
		}
		return
	}
	select {
	case d.txNotify <- struct{}{}:
	default:
	}
}

// Send queues p for transmission and starts the chain if it is idle.
// Every byte is accepted (the TX ring overwrites its oldest byte when
// full). Returns len(p), or 0 when p is empty or the first byte cannot be
// recovered from the ring immediately after queueing.
func (d *Driver) Send(p []byte) int {
	if len(p) == 0 {
		return 0
	}
	d.mu.Lock()
	for _, b := range p {
		d.tx.Push(b)
	}
	var first byte
	kick := false
	if !d.txBusy {
		b, ok := d.tx.Pop()
		if !ok {
			d.mu.Unlock()
			return 0
		}
		d.txBusy = true
		first, kick = b, true
	}
	d.mu.Unlock()
	if kick {
		if err := d.port.TransmitByte(first); err != nil {
			// The popped byte is sacrificed; the next Send restarts
			// the chain.
			d.mu.Lock()
			d.txBusy = false
			d.mu.Unlock()
		}
	}
	return len(p)
}

// ReadByte pops one byte from the RX ring without blocking.
func (d *Driver) ReadByte() (byte, error) {
	d.mu.Lock()
	b, ok := d.rx.Pop()
	d.mu.Unlock()
	if !ok {
		return 0, ErrBufferEmpty
	}
	return b, nil
}

// Buffered returns the number of bytes waiting in the RX ring.
func (d *Driver) Buffered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rx.Len()
}

// TxPending returns the number of bytes still queued for transmission,
// not counting a byte already handed to the port.
func (d *Driver) TxPending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx.Len()
}

// TxBusy reports whether a transmit chain is in flight.
func (d *Driver) TxBusy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txBusy
}

// Readable returns a coalesced notification for RX readiness. The channel
// is level-coalesced; callers must re-check state after waking.
func (d *Driver) Readable() <-chan struct{} { return d.notify }

// Writable returns a coalesced notification sent when the TX chain drains.
func (d *Driver) Writable() <-chan struct{} { return d.txNotify }

// Config returns the last applied channel configuration.
func (d *Driver) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// Reconfigure quiesces the channel and brings it back up at the new rate.
// In-flight transfers are aborted and both rings discarded. On failure the
// port is restored to the last-good configuration and the error returned.
// Callers must hold off new Sends until Reconfigure returns.
func (d *Driver) Reconfigure(baud uint32) error {
	if baud == 0 {
		return ErrInvalidBaud
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	_ = d.port.AbortTransmit()
	_ = d.port.AbortReceive()
	// The aborted byte never completes, so the chain must go idle here:
	// otherwise a failed reinit leaves Send waiting forever on an
	// OnTxDone that cannot arrive.
	d.txBusy = false
	if err := d.port.Deinit(); err != nil {
		return err
	}

	cfg := d.cfg
	cfg.BaudRate = baud
	if err := d.port.Init(d, cfg); err != nil {
		if rerr := d.port.Init(d, d.cfg); rerr == nil {
			_ = d.port.ReceiveByte()
		}
		return err
	}
	d.cfg = cfg
	d.rx.Reset()
	d.tx.Reset()
	return d.port.ReceiveByte()
}
