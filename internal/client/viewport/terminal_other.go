//go:build !unix

package viewport

import (
	"fmt"

	"golang.org/x/term"
)

func (t *Terminal) width() (int, error) {
	cols, _, err := term.GetSize(t.fd)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoTerminal, err)
	}
	return cols * t.cellWidth, nil
}

// there is no resize signal here; the width is sampled on demand only
func (t *Terminal) notify(out chan<- struct{}, done <-chan struct{}) func() {
	return func() {}
}
