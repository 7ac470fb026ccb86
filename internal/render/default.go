package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultRenderer writes ANSI frames to a terminal. A frame is buffered by
// Fill and written in one go by Flush.
type DefaultRenderer struct {
	// Out defaults to stdout
	Out io.Writer

	frame strings.Builder
	saved *term.State
}

func (r *DefaultRenderer) out() io.Writer {
	if nil == r.Out {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) Init() error {
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		saved, err := term.MakeRaw(fd)
		if nil != err {
			return fmt.Errorf("unable to enter raw mode: %w", err)
		}
		r.saved = saved
	}
	// Alternate buffer, hidden cursor, cleared screen
	_, err := io.WriteString(r.out(), "\033[?1049h\033[?25l\033[J")
	return err
}

func (r *DefaultRenderer) Deinit() error {
	if _, err := io.WriteString(r.out(), "\033[?1049l\033[?25h"); nil != err {
		return err
	}
	if nil == r.saved {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.saved)
}

// Size is the terminal size in columns and rows.
func Size() (int, int, error) {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return 0, 0, fmt.Errorf("unable to get terminal size: %w", err)
	}
	return columns, rows, nil
}

// Fill places message at a 1-based row and column.
func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	fmt.Fprintf(&r.frame, "\033[%d;%dH%s", row, column, message)
}

func (r *DefaultRenderer) Flush() error {
	_, err := io.WriteString(r.out(), r.frame.String())
	r.frame.Reset()
	return err
}

// visibleWidth counts the runes of s outside ANSI escape sequences.
func visibleWidth(s string) int {
	n := 0
	escape := false
	for _, c := range s {
		switch {
		case escape:
			if c >= '@' && c <= '~' && c != '[' {
				escape = false
			}
		case c == '\033':
			escape = true
		default:
			n++
		}
	}
	return n
}
