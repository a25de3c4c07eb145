// shell/editor.go

package shell

import "github.com/s-rincon/fw-stm32-uart-shell/cli"

// parseState tags the editor's position inside an ANSI escape sequence.
// Only the 3-byte CSI cursor sequences (ESC [ A/B/C/D) are recognised;
// longer parameterised sequences are not supported.
type parseState uint8

const (
	stateNormal parseState = iota
	stateEscape
	stateEscapeBracket
)

const (
	byteBackspace = 8
	byteTab       = 9
	byteCR        = '\r'
	byteEsc       = 27
	byteDel       = 127
)

// processByte advances the editor by exactly one input byte. Every failure
// path lands back in stateNormal so a malformed sequence never wedges the
// session.
func (s *Shell) processByte(b byte) {
	switch s.state {
	case stateEscape:
		if b == '[' {
			s.state = stateEscapeBracket
		} else {
			s.state = stateNormal
		}
	case stateEscapeBracket:
		s.state = stateNormal
		switch b {
		case 'A':
			s.historyPrev()
		case 'B':
			s.historyNext()
		case 'C':
			s.cursorRight()
		case 'D':
			s.cursorLeft()
		}
	default:
		s.processNormal(b)
	}
}

func (s *Shell) processNormal(b byte) {
	switch {
	case b == byteEsc:
		s.state = stateEscape
	case b == byteCR:
		s.finalize()
	case b == byteDel || b == byteBackspace:
		s.deleteBeforeCursor()
	case b == byteTab:
		s.completeLine()
	case b >= 32 && b <= 126:
		s.insertAtCursor(b)
	}
}

// insertAtCursor writes b at the cursor, shifting the tail right. The
// shifted region is re-echoed and the terminal cursor pulled back to just
// after the inserted character.
func (s *Shell) insertAtCursor(b byte) {
	if s.length >= maxLineLen-1 {
		s.overflow()
		return
	}
	copy(s.line[s.cursor+1:s.length+1], s.line[s.cursor:s.length])
	s.line[s.cursor] = b
	s.length++

	s.SendBytes(s.line[s.cursor:s.length])
	s.sendRepeat('\b', s.length-s.cursor-1)
	s.cursor++
}

// deleteBeforeCursor removes the character left of the cursor, shifting
// the tail and repainting it with a trailing space to rub out the stale
// glyph.
func (s *Shell) deleteBeforeCursor() {
	if s.cursor == 0 {
		return
	}
	copy(s.line[s.cursor-1:s.length-1], s.line[s.cursor:s.length])
	s.length--
	s.cursor--

	s.SendBytes([]byte{'\b'})
	s.SendBytes(s.line[s.cursor:s.length])
	s.SendBytes([]byte{' '})
	s.sendRepeat('\b', s.length-s.cursor+1)
}

func (s *Shell) cursorLeft() {
	if s.cursor == 0 {
		return
	}
	s.cursor--
	s.SendBytes([]byte{'\b'})
}

// cursorRight re-echoes the character under the cursor, which advances the
// terminal cursor without disturbing the line.
func (s *Shell) cursorRight() {
	if s.cursor >= s.length {
		return
	}
	s.SendBytes(s.line[s.cursor : s.cursor+1])
	s.cursor++
}

// historyPrev recalls the previous entry. It refuses to move past the
// oldest retained command.
func (s *Shell) historyPrev() {
	cmd, ok := s.hist.prev()
	if !ok {
		return
	}
	s.replaceLine(cmd)
}

// historyNext recalls the next entry, or an empty line when stepping past
// the newest.
func (s *Shell) historyNext() {
	cmd, ok := s.hist.next()
	if !ok {
		return
	}
	s.replaceLine(cmd)
}

// replaceLine clears the visible line and redraws it as cmd, cursor at
// end-of-line.
func (s *Shell) replaceLine(cmd string) {
	s.sendRepeat('\b', s.length)
	s.sendRepeat(' ', s.length)
	s.sendRepeat('\b', s.length)

	if len(cmd) > maxLineLen-1 {
		cmd = cmd[:maxLineLen-1]
	}
	copy(s.line[:], cmd)
	s.length = len(cmd)
	s.cursor = s.length
	s.Printf("%s", cmd)
}

// completeLine runs tab completion over the current line. A single match
// is written into the edit buffer; listings and usage output get a fresh
// prompt with the line redrawn.
func (s *Shell) completeLine() {
	if s.length == 0 || s.cursor != s.length {
		return
	}
	partial := string(s.line[:s.length])
	full, res := s.disp.Complete(s, partial)
	switch res {
	case cli.SingleMatch:
		if len(full) > maxLineLen-1 {
			return
		}
		suffix := full[len(partial):]
		s.SendBytes([]byte(suffix))
		copy(s.line[:], full)
		s.length = len(full)
		s.cursor = s.length
	case cli.HelpShown, cli.MultipleMatches:
		s.Printf(prompt)
		s.SendBytes(s.line[:s.length])
	}
}

func (s *Shell) sendRepeat(b byte, n int) {
	if n <= 0 {
		return
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	s.drv.Send(buf)
}
