package sdeyaml

import (
	"bufio"
	"io"
	"strings"
)

// lineReader hands out the input one physical line at a time and supports
// pushing lines back, which is how lookahead is implemented: a peek reads
// forward and then unreads everything it saw, so the driver still consumes
// every physical line exactly once. Line numbers are 1-based and move
// backwards on unread, keeping error positions exact.
type lineReader struct {
	r       *bufio.Reader
	pending []string // Lines pushed back, next-to-read first.
	lineNum int      // Number of the line most recently handed out.
	eof     bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// readLine returns the next physical line without its line ending. Both LF
// and CRLF endings are handled; a stray '\r' would otherwise defeat the
// end-of-line checks on quoted scalars. ok is false once the input is
// exhausted.
func (lr *lineReader) readLine() (line string, ok bool, err error) {
	if n := len(lr.pending); n > 0 {
		line = lr.pending[n-1]
		lr.pending = lr.pending[:n-1]
		lr.lineNum++
		return line, true, nil
	}

	if lr.eof {
		return "", false, nil
	}

	line, err = lr.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", false, err
		}
		lr.eof = true
		if line == "" {
			return "", false, nil
		}
		// Final line without a trailing newline.
		lr.lineNum++
		return strings.TrimSuffix(line, "\r"), true, nil
	}

	lr.lineNum++
	return strings.TrimSuffix(line[:len(line)-1], "\r"), true, nil
}

// unread pushes a line back so the next readLine returns it again.
func (lr *lineReader) unread(line string) {
	lr.pending = append(lr.pending, line)
	lr.lineNum--
}

// peekSignificant returns the next non-blank, non-comment line without
// consuming anything: every line read during the peek, skipped ones
// included, is pushed back afterwards. ok is false if only blanks and
// comments remain.
func (lr *lineReader) peekSignificant() (line string, ok bool, err error) {
	var seen []string
	defer func() {
		for i := len(seen) - 1; i >= 0; i-- {
			lr.unread(seen[i])
		}
	}()

	for {
		next, more, err := lr.readLine()
		if err != nil {
			return "", false, err
		}
		if !more {
			return "", false, nil
		}
		seen = append(seen, next)
		if isSignificant(next) {
			return next, true, nil
		}
	}
}
