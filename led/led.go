// led/led.go

// Package led controls a single status LED over an abstract output pin,
// with one-shot states and a timestamp-compare blink task driven from the
// cooperative main loop.
package led

import (
	"errors"
	"time"
)

// Pin is the GPIO collaborator: set the physical output high or low.
type Pin interface {
	Set(on bool)
}

// PinFunc adapts a function to the Pin interface.
type PinFunc func(on bool)

func (f PinFunc) Set(on bool) { f(on) }

var ErrNoPin = errors.New("led: nil pin")

// Driver holds the LED state. Not safe for concurrent use; it belongs to
// the task loop.
type Driver struct {
	pin Pin
	now func() time.Time

	blinkPeriod time.Duration
	nextToggle  time.Time
	blinking    bool
	state       bool
}

// New returns a Driver over pin, switched off. The clock defaults to
// time.Now; tests inject their own.
func New(pin Pin, opts ...Option) (*Driver, error) {
	if pin == nil {
		return nil, ErrNoPin
	}
	d := &Driver{pin: pin, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	d.Off()
	return d, nil
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// On switches the LED on and cancels blinking.
func (d *Driver) On() {
	d.blinking = false
	d.state = true
	d.pin.Set(true)
}

// Off switches the LED off and cancels blinking.
func (d *Driver) Off() {
	d.blinking = false
	d.state = false
	d.pin.Set(false)
}

// Toggle flips the LED without touching blink state.
func (d *Driver) Toggle() {
	d.state = !d.state
	d.pin.Set(d.state)
}

// Blink starts blinking with the given half-period. A zero or negative
// period is ignored.
func (d *Driver) Blink(period time.Duration) {
	if period <= 0 {
		return
	}
	d.blinkPeriod = period
	d.blinking = true
	d.nextToggle = d.now().Add(period)
	d.state = true
	d.pin.Set(true)
}

// Task advances the blink schedule; call it once per loop iteration.
func (d *Driver) Task() {
	if !d.blinking {
		return
	}
	if !d.now().Before(d.nextToggle) {
		d.Toggle()
		d.nextToggle = d.now().Add(d.blinkPeriod)
	}
}

// State reports whether the LED is currently lit.
func (d *Driver) State() bool { return d.state }

// IsBlinking reports whether the blink task is active.
func (d *Driver) IsBlinking() bool { return d.blinking }

// BlinkPeriod returns the configured half-period.
func (d *Driver) BlinkPeriod() time.Duration { return d.blinkPeriod }
