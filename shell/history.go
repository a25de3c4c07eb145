// shell/history.go

package shell

// history is a bounded ring of previous command lines with a browse pointer
// walking backward from the newest entry. Consecutive duplicates are not
// stored.
type history struct {
	entries [historySize]string
	write   int // next slot to fill
	count   int
	browse  int // steps back from the newest entry; 0 = not browsing
}

// resetBrowse returns the browse pointer to the newest entry.
func (h *history) resetBrowse() { h.browse = 0 }

// add commits a command line and resets browsing to the newest entry.
func (h *history) add(cmd string) {
	h.browse = 0
	if cmd == "" {
		return
	}
	if h.count > 0 {
		last := h.entries[(h.write-1+historySize)%historySize]
		if last == cmd {
			return
		}
	}
	h.entries[h.write] = cmd
	h.write = (h.write + 1) % historySize
	if h.count < historySize {
		h.count++
	}
}

// prev steps one entry backward. It refuses to move past the oldest
// retained entry.
func (h *history) prev() (string, bool) {
	if h.browse >= h.count {
		return "", false
	}
	h.browse++
	return h.at(h.browse), true
}

// next steps one entry forward. Stepping past the newest entry yields an
// empty line; ok is false when not browsing at all.
func (h *history) next() (string, bool) {
	if h.browse == 0 {
		return "", false
	}
	h.browse--
	if h.browse == 0 {
		return "", true
	}
	return h.at(h.browse), true
}

// at returns the entry n steps back from the newest (n >= 1).
func (h *history) at(n int) string {
	return h.entries[(h.write-n+historySize)%historySize]
}

// each visits entries oldest first.
func (h *history) each(f func(i int, cmd string)) {
	for i := 0; i < h.count; i++ {
		f(i, h.at(h.count-i))
	}
}
