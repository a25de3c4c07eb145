// cli/dispatcher.go

// Package cli implements command dispatch for the UART shell: a static
// ordered command table, a bounded tokenizer, and prefix-based tab
// completion. Handlers write back through the Console interface so the
// package stays independent of the transport.
package cli

import "strings"

// NewlineSeq terminates every output line the shell emits.
const NewlineSeq = "\r\n"

// maxTokens bounds the tokenizer; excess tokens are silently dropped.
const maxTokens = 4

// Console is the output sink handed to command handlers.
type Console interface {
	Printf(format string, args ...interface{})
}

// Handler executes a command. args excludes the command name itself; the
// handler validates its own argument count.
type Handler func(c Console, args []string)

// Command is one entry of the static table.
type Command struct {
	Name  string
	Brief string // one-line summary for the help listing
	Usage string // focused usage text, shown for "<name> help"
	Run   Handler
}

// Dispatcher matches lines against an ordered command table. The table is
// immutable after New; lookup is sequential first-match-wins, which is
// adequate at this table size.
type Dispatcher struct {
	cmds []Command
}

// New builds a dispatcher over cmds in registration order. The table must
// not contain duplicate names; the first occurrence would shadow the rest.
func New(cmds ...Command) *Dispatcher {
	return &Dispatcher{cmds: cmds}
}

// Commands returns the table's names in registration order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, len(d.cmds))
	for i := range d.cmds {
		names[i] = d.cmds[i].Name
	}
	return names
}

// tokenize splits line on spaces into at most maxTokens tokens. Runs of
// spaces collapse; tokens beyond the cap are dropped, not an error.
func tokenize(line string) []string {
	var tokens []string
	for _, tok := range strings.Split(line, " ") {
		if tok == "" {
			continue
		}
		if len(tokens) == maxTokens {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Execute tokenizes line and runs the matching handler. Empty input is a
// no-op; an unknown first token prints a diagnostic with a help hint.
// "<name> help" prints the command's usage without invoking its handler.
func (d *Dispatcher) Execute(c Console, line string) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return
	}
	for i := range d.cmds {
		cmd := &d.cmds[i]
		if cmd.Name != tokens[0] {
			continue
		}
		args := tokens[1:]
		if len(args) == 1 && args[0] == "help" {
			d.printUsage(c, cmd)
			return
		}
		cmd.Run(c, args)
		return
	}
	c.Printf("Unknown command: %s"+NewlineSeq, tokens[0])
	c.Printf("Type 'help' for available commands." + NewlineSeq)
}

func (d *Dispatcher) printUsage(c Console, cmd *Command) {
	if cmd.Usage != "" {
		c.Printf("%s", cmd.Usage)
		return
	}
	c.Printf("%s - %s"+NewlineSeq, cmd.Name, cmd.Brief)
}

// PrintHelp lists every command with its one-line summary.
func (d *Dispatcher) PrintHelp(c Console) {
	c.Printf("Available commands:" + NewlineSeq)
	width := 0
	for i := range d.cmds {
		if len(d.cmds[i].Name) > width {
			width = len(d.cmds[i].Name)
		}
	}
	for i := range d.cmds {
		c.Printf("  %-*s - %s"+NewlineSeq, width, d.cmds[i].Name, d.cmds[i].Brief)
	}
}

// PrintUsage prints the usage text for name, or an unknown-command
// diagnostic.
func (d *Dispatcher) PrintUsage(c Console, name string) {
	for i := range d.cmds {
		if d.cmds[i].Name == name {
			d.printUsage(c, &d.cmds[i])
			return
		}
	}
	c.Printf("Unknown command: %s"+NewlineSeq, name)
	c.Printf("Type 'help' for available commands." + NewlineSeq)
}
