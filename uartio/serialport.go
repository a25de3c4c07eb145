// uartio/serialport.go

package uartio

import (
	"errors"
	"sync"

	"go.bug.st/serial"
)

// SerialPort drives a real serial device through go.bug.st/serial. Each
// Init opens the device at the requested rate and spawns a fresh pair of
// pump goroutines; Deinit closes the device, which unblocks the reader and
// retires the old generation. Reception stays continuously armed.
type SerialPort struct {
	name string

	mu   sync.Mutex
	h    Handler
	dev  serial.Port
	txCh chan byte
	stop chan struct{}
}

// NewSerialPort returns an unopened port for the named device
// (e.g. /dev/ttyUSB0, COM3).
func NewSerialPort(name string) *SerialPort {
	return &SerialPort{name: name}
}

func serialMode(cfg Config) (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: int(cfg.BaudRate),
		DataBits: int(cfg.DataBits),
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	if mode.DataBits == 0 {
		mode.DataBits = 8
	}
	switch cfg.Parity {
	case ParityNone:
	case ParityEven:
		mode.Parity = serial.EvenParity
	case ParityOdd:
		mode.Parity = serial.OddParity
	default:
		return nil, errors.New("uartio: unsupported parity")
	}
	if cfg.StopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	}
	return mode, nil
}

func (p *SerialPort) Init(h Handler, cfg Config) error {
	mode, err := serialMode(cfg)
	if err != nil {
		return err
	}
	dev, err := serial.Open(p.name, mode)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.h = h
	p.dev = dev
	p.txCh = make(chan byte, 1)
	p.stop = make(chan struct{})
	txCh, stop := p.txCh, p.stop
	p.mu.Unlock()

	go p.rxPump(dev, stop)
	go p.txPump(dev, txCh, stop)
	return nil
}

func (p *SerialPort) Deinit() error {
	p.mu.Lock()
	dev, stop := p.dev, p.stop
	p.dev, p.stop, p.txCh = nil, nil, nil
	p.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	if dev != nil {
		return dev.Close()
	}
	return nil
}

func (p *SerialPort) ReceiveByte() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev == nil {
		return errPortDown
	}
	return nil
}

func (p *SerialPort) TransmitByte(b byte) error {
	p.mu.Lock()
	txCh := p.txCh
	p.mu.Unlock()
	if txCh == nil {
		return errPortDown
	}
	// At most one byte is ever in flight, so a full channel means the pump
	// died on a write error.
	select {
	case txCh <- b:
		return nil
	default:
		return errPortDown
	}
}

func (p *SerialPort) AbortTransmit() error {
	p.mu.Lock()
	txCh, dev := p.txCh, p.dev
	p.mu.Unlock()
	if txCh != nil {
		select {
		case <-txCh:
		default:
		}
	}
	if dev != nil {
		return dev.ResetOutputBuffer()
	}
	return nil
}

func (p *SerialPort) AbortReceive() error {
	p.mu.Lock()
	dev := p.dev
	p.mu.Unlock()
	if dev != nil {
		return dev.ResetInputBuffer()
	}
	return nil
}

func (p *SerialPort) rxPump(dev serial.Port, stop chan struct{}) {
	var buf [1]byte
	for {
		n, err := dev.Read(buf[:])
		if err != nil {
			return
		}
		select {
		case <-stop:
			return
		default:
		}
		if n == 0 {
			continue
		}
		p.mu.Lock()
		h := p.h
		p.mu.Unlock()
		if h != nil {
			h.OnRxByte(buf[0])
		}
	}
}

func (p *SerialPort) txPump(dev serial.Port, txCh chan byte, stop chan struct{}) {
	var buf [1]byte
	for {
		select {
		case b := <-txCh:
			buf[0] = b
			if _, err := dev.Write(buf[:]); err != nil {
				return
			}
			p.mu.Lock()
			h := p.h
			p.mu.Unlock()
			if h != nil {
				h.OnTxDone()
			}
		case <-stop:
			return
		}
	}
}
