// cmd/uartshell/main.go

// uartshell runs the interactive UART shell on the local terminal (raw
// mode) or bridged to a real serial device with -port.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/s-rincon/fw-stm32-uart-shell/cli"
	"github.com/s-rincon/fw-stm32-uart-shell/led"
	"github.com/s-rincon/fw-stm32-uart-shell/shell"
	"github.com/s-rincon/fw-stm32-uart-shell/uartio"
)

var (
	portName = flag.String("port", "", "serial device to attach to (default: local terminal)")
	baud     = flag.Uint("baud", 115200, "initial baud rate")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	var port uartio.Port
	if *portName != "" {
		port = uartio.NewSerialPort(*portName)
	} else {
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			old, err := term.MakeRaw(fd)
			if err != nil {
				glog.Exitf("raw mode: %v", err)
			}
			defer term.Restore(fd, old)
		}
		port = uartio.NewStreamPort(os.Stdin, os.Stdout)
	}

	drv, err := uartio.New(port, uartio.Config{BaudRate: uint32(*baud)})
	if err != nil {
		glog.Exitf("uart init: %v", err)
	}

	// The host has no GPIO; the LED state is still observable through
	// "led get_state".
	lamp, err := led.New(led.PinFunc(func(bool) {}))
	if err != nil {
		glog.Exitf("led init: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	exit := cli.Command{
		Name:  "exit",
		Brief: "Leave the shell",
		Usage: "Usage: exit" + cli.NewlineSeq,
		Run: func(c cli.Console, args []string) {
			c.Printf("Bye." + cli.NewlineSeq)
			cancel()
		},
	}

	sh, err := shell.New(drv, led.Command(lamp), exit)
	if err != nil {
		glog.Exitf("shell init: %v", err)
	}

	// Cooperative main loop: one run-to-completion iteration per wake-up.
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-drv.Readable():
			sh.Task()
		case <-tick.C:
			sh.Task()
			lamp.Task()
		case <-ctx.Done():
			// Let the farewell drain before dropping the terminal.
			time.Sleep(50 * time.Millisecond)
			return
		}
	}
}
