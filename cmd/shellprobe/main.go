// cmd/shellprobe/main.go

// shellprobe drives a scripted session through the in-memory loopback port
// and prints the resulting transcript. Useful as a smoke test for the
// editor, completion, and command table without any hardware attached.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/s-rincon/fw-stm32-uart-shell/led"
	"github.com/s-rincon/fw-stm32-uart-shell/shell"
	"github.com/s-rincon/fw-stm32-uart-shell/uartio"
)

// script is typed keystroke-for-keystroke; \t exercises completion, the
// ESC [ A sequence recalls history.
var script = []string{
	"help\r",
	"ver\t\r",
	"led get_state\r",
	"led blink 50\r",
	"led blink 20000\r",
	"h\t\r",
	"\x1b[A\x1b[A\r", // up, up: recall and re-run an earlier command
	"history\r",
	"bogus\r",
}

func main() {
	flag.Parse()
	defer glog.Flush()

	port := uartio.NewLoopPort()
	drv, err := uartio.New(port, uartio.Config{BaudRate: 115200})
	if err != nil {
		glog.Exitf("uart init: %v", err)
	}
	lamp, err := led.New(led.PinFunc(func(bool) {}))
	if err != nil {
		glog.Exitf("led init: %v", err)
	}
	sh, err := shell.New(drv, led.Command(lamp))
	if err != nil {
		glog.Exitf("shell init: %v", err)
	}

	flush := func() {
		if out := port.Output(); len(out) > 0 {
			os.Stdout.Write(out)
		}
	}
	flush()

	for _, keys := range script {
		port.Inject([]byte(keys))
		sh.Task()
		lamp.Task()
		flush()
	}

	// Let the blink task run a few periods so get_state has something to
	// tell next time around.
	for i := 0; i < 3; i++ {
		time.Sleep(60 * time.Millisecond)
		lamp.Task()
	}
	port.Inject([]byte("led get_state\r"))
	sh.Task()
	flush()

	fmt.Println()
}
