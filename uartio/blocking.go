// uartio/blocking.go

package uartio

import "context"

// Blocking helpers for host-side callers. The embedded-style task loop
// never blocks; these exist for front-ends that prefer to park on the
// transport instead of polling.

// TryRead returns immediately with up to len(p) bytes copied from the RX
// ring. It never blocks and never returns an error; 0 means no data now.
func (d *Driver) TryRead(p []byte) int {
	n := 0
	for n < len(p) {
		b, err := d.ReadByte()
		if err != nil {
			break
		}
		p[n] = b
		n++
	}
	return n
}

// WaitReadable blocks until RX data is available or ctx is done. The
// notify channel is coalesced, so state is re-checked after every wake.
func (d *Driver) WaitReadable(ctx context.Context) error {
	for {
		if d.Buffered() > 0 {
			return nil
		}
		select {
		case <-d.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ReadByteBlocking blocks for a single byte or until ctx is done.
func (d *Driver) ReadByteBlocking(ctx context.Context) (byte, error) {
	for {
		if b, err := d.ReadByte(); err == nil {
			return b, nil
		}
		if err := d.WaitReadable(ctx); err != nil {
			return 0, err
		}
	}
}
