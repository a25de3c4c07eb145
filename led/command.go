// led/command.go

package led

import (
	"strconv"
	"time"

	"github.com/s-rincon/fw-stm32-uart-shell/cli"
)

const (
	minBlinkMs = 1
	maxBlinkMs = 10000
)

// Command returns the shell command controlling d.
func Command(d *Driver) cli.Command {
	return cli.Command{
		Name:  "led",
		Brief: "Control the status LED",
		Usage: "Usage: led <on|off|toggle|get_state>" + cli.NewlineSeq +
			"       led blink <period_ms>      (1-10000)" + cli.NewlineSeq,
		Run: func(c cli.Console, args []string) {
			runLed(c, d, args)
		},
	}
}

func runLed(c cli.Console, d *Driver, args []string) {
	if len(args) == 0 {
		c.Printf("Missing argument. Try 'led help'." + cli.NewlineSeq)
		return
	}

	switch args[0] {
	case "on":
		if len(args) > 1 {
			c.Printf("Too many arguments." + cli.NewlineSeq)
			return
		}
		d.On()
		c.Printf("LED on" + cli.NewlineSeq)
	case "off":
		if len(args) > 1 {
			c.Printf("Too many arguments." + cli.NewlineSeq)
			return
		}
		d.Off()
		c.Printf("LED off" + cli.NewlineSeq)
	case "toggle":
		if len(args) > 1 {
			c.Printf("Too many arguments." + cli.NewlineSeq)
			return
		}
		d.Toggle()
		c.Printf("LED toggled" + cli.NewlineSeq)
	case "get_state":
		if len(args) > 1 {
			c.Printf("Too many arguments." + cli.NewlineSeq)
			return
		}
		switch {
		case d.IsBlinking():
			c.Printf("LED state: blinking (%d ms)"+cli.NewlineSeq,
				d.BlinkPeriod()/time.Millisecond)
		case d.State():
			c.Printf("LED state: on" + cli.NewlineSeq)
		default:
			c.Printf("LED state: off" + cli.NewlineSeq)
		}
	case "blink":
		if len(args) < 2 {
			c.Printf("Missing period. Try 'led help'." + cli.NewlineSeq)
			return
		}
		if len(args) > 2 {
			c.Printf("Too many arguments." + cli.NewlineSeq)
			return
		}
		ms, err := strconv.Atoi(args[1])
		if err != nil || ms < minBlinkMs || ms > maxBlinkMs {
			c.Printf("Invalid period: %s (expected %d-%d ms)"+cli.NewlineSeq,
				args[1], minBlinkMs, maxBlinkMs)
			return
		}
		d.Blink(time.Duration(ms) * time.Millisecond)
		c.Printf("LED blinking every %d ms"+cli.NewlineSeq, ms)
	default:
		c.Printf("Unknown argument: %s"+cli.NewlineSeq, args[0])
		c.Printf("Try 'led help'." + cli.NewlineSeq)
	}
}
