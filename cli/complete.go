// cli/complete.go

package cli

import "strings"

// Result classifies the outcome of a tab-completion attempt.
type Result int

const (
	// NoMatch means no command name starts with the partial input.
	NoMatch Result = iota
	// SingleMatch means exactly one candidate; the full name is returned.
	SingleMatch
	// HelpShown means the input already names a command and its usage was
	// printed instead of completing further.
	HelpShown
	// MultipleMatches means the colliding candidate set was printed.
	MultipleMatches
)

// Complete resolves partial against the command table. When partial is
// already a full command name (possibly with trailing input after it), the
// command's usage is shown; the exact-or-extends check compares against the
// command's length, so a bare full name counts as exact before prefix
// matching runs. Otherwise the prefix candidates decide: one candidate is
// returned as the completion, several are listed, none is reported as
// NoMatch.
func (d *Dispatcher) Complete(c Console, partial string) (string, Result) {
	for i := range d.cmds {
		name := d.cmds[i].Name
		if len(partial) >= len(name) && partial[:len(name)] == name {
			c.Printf(NewlineSeq)
			d.Execute(c, name+" help")
			return "", HelpShown
		}
	}

	var candidates []string
	for i := range d.cmds {
		if strings.HasPrefix(d.cmds[i].Name, partial) {
			candidates = append(candidates, d.cmds[i].Name)
		}
	}
	switch len(candidates) {
	case 0:
		return "", NoMatch
	case 1:
		return candidates[0], SingleMatch
	}
	c.Printf(NewlineSeq)
	for _, name := range candidates {
		c.Printf("  %s"+NewlineSeq, name)
	}
	return "", MultipleMatches
}
