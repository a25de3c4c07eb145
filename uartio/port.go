// uartio/port.go

package uartio

// Parity defines the parity setting used for UART communication.
type Parity uint8

const (
	// ParityNone disables parity generation and checking (the most common setting).
	ParityNone Parity = iota
	// ParityEven sets even parity (total number of 1 bits is even).
	ParityEven
	// ParityOdd sets odd parity (total number of 1 bits is odd).
	ParityOdd
)

// Config describes the serial format of a channel.
type Config struct {
	BaudRate uint32
	DataBits uint8
	StopBits uint8
	Parity   Parity
}

// Handler receives completion notifications from a Port. Both callbacks run
// in the port's delivery context (its interrupt goroutine); they must not
// block.
type Handler interface {
	// OnRxByte is invoked once per armed receive when a byte arrives.
	OnRxByte(b byte)
	// OnTxDone is invoked when the byte given to TransmitByte is on the wire.
	OnTxDone()
}

// Port is the hardware collaborator contract: one-byte asynchronous
// transfers with completion callbacks. TransmitByte may complete
// synchronously (the caller never holds driver state across it);
// ReceiveByte must only arm reception and never deliver from within the
// call itself.
type Port interface {
	Init(h Handler, cfg Config) error
	Deinit() error

	// ReceiveByte arms a single-byte asynchronous receive.
	ReceiveByte() error
	// TransmitByte starts a single-byte asynchronous transmit.
	TransmitByte(b byte) error

	AbortTransmit() error
	AbortReceive() error
}
