package viewport

import (
	"errors"
	"os"
	"sync"
)

var ErrNoTerminal = errors.New("not a terminal")

// Terminal measures the terminal attached to a file. When the terminal does
// not report its size in pixels, the width is the column count times
// cellWidth.
type Terminal struct {
	fd        int
	cellWidth int
}

func NewTerminal(f *os.File, cellWidth int) *Terminal {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	return &Terminal{fd: int(f.Fd()), cellWidth: cellWidth}
}

func (t *Terminal) Width() (int, error) {
	return t.width()
}

// Subscribe forwards resize notifications. Bursts coalesce into one pending
// signal.
func (t *Terminal) Subscribe() (<-chan struct{}, func()) {
	out := make(chan struct{}, 1)
	done := make(chan struct{})

	release := t.notify(out, done)

	var once sync.Once
	return out, func() {
		once.Do(func() {
			close(done)
			release()
		})
	}
}
