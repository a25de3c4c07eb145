// shell/commands.go

package shell

import (
	"strconv"

	"github.com/s-rincon/fw-stm32-uart-shell/cli"
	"github.com/s-rincon/fw-stm32-uart-shell/version"
)

// clearScreen homes the cursor after wiping the display.
const clearScreen = "\033[2J\033[H"

// buildDispatcher assembles the built-in table plus any extra domain
// commands, in registration order.
func (s *Shell) buildDispatcher(extra []cli.Command) *cli.Dispatcher {
	cmds := []cli.Command{
		{
			Name:  "help",
			Brief: "Show this help",
			Usage: "Usage: help [command]" + cli.NewlineSeq,
			Run:   s.runHelp,
		},
		{
			Name:  "clear",
			Brief: "Clear screen",
			Usage: "Usage: clear" + cli.NewlineSeq,
			Run:   s.runClear,
		},
		{
			Name:  "history",
			Brief: "Show command history",
			Usage: "Usage: history" + cli.NewlineSeq,
			Run:   s.runHistory,
		},
		{
			Name:  "version",
			Brief: "Show version info",
			Usage: "Usage: version" + cli.NewlineSeq,
			Run:   s.runVersion,
		},
		{
			Name:  "baud",
			Brief: "Change the UART baud rate",
			Usage: "Usage: baud <rate>" + cli.NewlineSeq,
			Run:   s.runBaud,
		},
	}
	cmds = append(cmds, extra...)
	return cli.New(cmds...)
}

func (s *Shell) runHelp(c cli.Console, args []string) {
	switch len(args) {
	case 0:
		s.disp.PrintHelp(c)
	case 1:
		s.disp.PrintUsage(c, args[0])
	default:
		c.Printf("Too many arguments." + cli.NewlineSeq)
	}
}

func (s *Shell) runClear(c cli.Console, args []string) {
	if len(args) > 0 {
		c.Printf("Too many arguments." + cli.NewlineSeq)
		return
	}
	c.Printf(clearScreen)
}

func (s *Shell) runHistory(c cli.Console, args []string) {
	if len(args) > 0 {
		c.Printf("Too many arguments." + cli.NewlineSeq)
		return
	}
	c.Printf("Command history:" + cli.NewlineSeq)
	s.hist.each(func(i int, cmd string) {
		c.Printf("  %d: %s"+cli.NewlineSeq, i+1, cmd)
	})
}

func (s *Shell) runVersion(c cli.Console, args []string) {
	if len(args) > 0 {
		c.Printf("Too many arguments." + cli.NewlineSeq)
		return
	}
	c.Printf("Version: %s"+cli.NewlineSeq, version.String())
}

func (s *Shell) runBaud(c cli.Console, args []string) {
	switch len(args) {
	case 0:
		c.Printf("Missing rate. Try 'baud help'." + cli.NewlineSeq)
		return
	case 1:
	default:
		c.Printf("Too many arguments." + cli.NewlineSeq)
		return
	}
	rate, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || rate == 0 {
		c.Printf("Invalid rate: %s"+cli.NewlineSeq, args[0])
		return
	}
	if err := s.drv.Reconfigure(uint32(rate)); err != nil {
		c.Printf("Reconfiguration failed: %v"+cli.NewlineSeq, err)
		return
	}
	c.Printf("Baud rate: %d"+cli.NewlineSeq, rate)
}
