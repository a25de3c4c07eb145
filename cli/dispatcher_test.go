package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingConsole struct {
	strings.Builder
}

func (r *recordingConsole) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r, format, args...)
}

func testTable(calls *[]string) []Command {
	mk := func(name string) Command {
		return Command{
			Name:  name,
			Brief: name + " brief",
			Usage: "usage: " + name + NewlineSeq,
			Run: func(c Console, args []string) {
				*calls = append(*calls, name+"("+strings.Join(args, ",")+")")
			},
		}
	}
	return []Command{mk("help"), mk("clear"), mk("history"), mk("version")}
}

func TestExecuteDispatchesFirstToken(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	d.Execute(&con, "version")
	d.Execute(&con, "clear now please")
	require.Equal(t, []string{"version()", "clear(now,please)"}, calls)
}

func TestExecuteEmptyLineIsNoOp(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	d.Execute(&con, "")
	d.Execute(&con, "   ")
	require.Empty(t, calls)
	require.Empty(t, con.String())
}

func TestExecuteUnknownCommand(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	d.Execute(&con, "bogus")
	require.Empty(t, calls)
	require.Contains(t, con.String(), "Unknown command: bogus")
	require.Contains(t, con.String(), "Type 'help' for available commands.")
}

func TestExecuteHelpArgumentPrintsUsage(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	d.Execute(&con, "clear help")
	require.Empty(t, calls, "handler must not run for '<name> help'")
	require.Contains(t, con.String(), "usage: clear")
}

func TestTokenizerCapsArguments(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	// Tokens beyond the cap are dropped, not passed through.
	d.Execute(&con, "version a b c d e")
	require.Equal(t, []string{"version(a,b,c)"}, calls)
}

func TestCommandsOrderIsStable(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	require.Equal(t, []string{"help", "clear", "history", "version"}, d.Commands())
}

func TestCompleteSingleMatch(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	full, res := d.Complete(&con, "ver")
	require.Equal(t, SingleMatch, res)
	require.Equal(t, "version", full)
}

func TestCompleteMultipleMatches(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	_, res := d.Complete(&con, "h")
	require.Equal(t, MultipleMatches, res)
	require.Contains(t, con.String(), "help")
	require.Contains(t, con.String(), "history")
}

func TestCompleteNoMatch(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	_, res := d.Complete(&con, "xyz")
	require.Equal(t, NoMatch, res)
	require.Empty(t, con.String())
}

func TestCompleteExactNameShowsHelp(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	_, res := d.Complete(&con, "version")
	require.Equal(t, HelpShown, res)
	require.Contains(t, con.String(), "usage: version")
	require.Empty(t, calls)
}

func TestCompleteNameWithTrailingInputShowsHelp(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	_, res := d.Complete(&con, "version x")
	require.Equal(t, HelpShown, res)
	require.Contains(t, con.String(), "usage: version")
}

func TestPrintHelpListsAll(t *testing.T) {
	var calls []string
	d := New(testTable(&calls)...)
	var con recordingConsole

	d.PrintHelp(&con)
	for _, name := range []string{"help", "clear", "history", "version"} {
		require.Contains(t, con.String(), name+" brief")
	}
}
