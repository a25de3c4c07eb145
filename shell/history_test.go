package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryDuplicateSuppression(t *testing.T) {
	var h history
	h.add("cmd1")
	h.add("cmd1")
	h.add("cmd2")
	require.Equal(t, 2, h.count)

	// up, up, down: cmd2, cmd1, cmd2
	cmd, ok := h.prev()
	require.True(t, ok)
	require.Equal(t, "cmd2", cmd)

	cmd, ok = h.prev()
	require.True(t, ok)
	require.Equal(t, "cmd1", cmd)

	cmd, ok = h.prev()
	require.False(t, ok, "must refuse to move past the oldest entry")

	cmd, ok = h.next()
	require.True(t, ok)
	require.Equal(t, "cmd2", cmd)
}

func TestHistoryNextPastNewestYieldsEmptyLine(t *testing.T) {
	var h history
	h.add("one")

	_, ok := h.next()
	require.False(t, ok, "next while not browsing is a no-op")

	cmd, ok := h.prev()
	require.True(t, ok)
	require.Equal(t, "one", cmd)

	cmd, ok = h.next()
	require.True(t, ok)
	require.Equal(t, "", cmd)
}

func TestHistoryEviction(t *testing.T) {
	var h history
	for _, cmd := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		h.add(cmd)
	}
	require.Equal(t, historySize, h.count)

	// Oldest entry "a" was evicted.
	var got []string
	h.each(func(i int, cmd string) { got = append(got, cmd) })
	require.Equal(t, []string{"b", "c", "d", "e", "f", "g", "h", "i"}, got)
}

func TestHistoryAddResetsBrowse(t *testing.T) {
	var h history
	h.add("first")
	h.add("second")

	_, _ = h.prev()
	_, _ = h.prev()
	h.add("third")

	cmd, ok := h.prev()
	require.True(t, ok)
	require.Equal(t, "third", cmd, "browse must restart at the newest entry")
}
