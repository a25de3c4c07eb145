// shell/shell.go

// Package shell implements the interactive line editor running on top of a
// uartio transport: an editable command line with an interior cursor, ANSI
// arrow-key handling, bounded history recall, tab completion, and dispatch
// of finished lines through a cli command table. All state is mutated from
// the task context; the transport handles the interrupt side.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/s-rincon/fw-stm32-uart-shell/cli"
	"github.com/s-rincon/fw-stm32-uart-shell/uartio"
	"github.com/s-rincon/fw-stm32-uart-shell/version"
)

const (
	maxLineLen  = 128
	historySize = 8

	prompt = "STM32 > "
)

var ErrNoDriver = errors.New("shell: nil driver")

// Shell is one interactive session bound to one transport.
type Shell struct {
	drv  *uartio.Driver
	disp *cli.Dispatcher

	state  parseState
	line   [maxLineLen]byte
	length int
	cursor int

	hist history
}

// New creates a shell over drv with the built-in commands plus extra, and
// prints the banner and first prompt.
func New(drv *uartio.Driver, extra ...cli.Command) (*Shell, error) {
	if drv == nil {
		return nil, ErrNoDriver
	}
	s := &Shell{drv: drv}
	s.disp = s.buildDispatcher(extra)
	s.printBanner()
	s.Printf(prompt)
	return s, nil
}

// Dispatcher exposes the command table, mainly for tests.
func (s *Shell) Dispatcher() *cli.Dispatcher { return s.disp }

// Printf formats and queues output on the transport. Implements
// cli.Console.
func (s *Shell) Printf(format string, args ...interface{}) {
	if format == "" {
		return
	}
	var msg string
	if len(args) == 0 {
		msg = format
	} else {
		msg = fmt.Sprintf(format, args...)
	}
	s.drv.Send([]byte(msg))
}

// SendBytes queues raw bytes on the transport and reports how many were
// accepted.
func (s *Shell) SendBytes(p []byte) int {
	return s.drv.Send(p)
}

// Task drains every byte buffered on the receive side through the editor
// state machine. Call it once per iteration of the cooperative main loop.
func (s *Shell) Task() {
	for {
		b, err := s.drv.ReadByte()
		if err != nil {
			return
		}
		s.processByte(b)
	}
}

func (s *Shell) printBanner() {
	s.Printf("****************************" + cli.NewlineSeq)
	s.Printf("Project: %s"+cli.NewlineSeq, version.Project)
	s.Printf("Version: %s"+cli.NewlineSeq, version.String())
	s.Printf("Author: %s"+cli.NewlineSeq, version.Author)
	s.Printf("****************************" + cli.NewlineSeq + cli.NewlineSeq)
}

// finalize runs when Enter is pressed: commit the line, dispatch it, and
// reissue the prompt.
func (s *Shell) finalize() {
	line := strings.TrimSpace(string(s.line[:s.length]))
	s.length = 0
	s.cursor = 0
	s.state = stateNormal

	s.Printf(cli.NewlineSeq)
	s.hist.add(line)
	if line != "" {
		s.disp.Execute(s, line)
	}
	s.Printf(prompt)
}

// overflow discards the whole input line rather than truncating it.
func (s *Shell) overflow() {
	s.length = 0
	s.cursor = 0
	s.hist.resetBrowse()
	s.Printf(cli.NewlineSeq+"Error: Command too long. Max length: %d"+cli.NewlineSeq, maxLineLen-1)
	s.Printf(prompt)
}
