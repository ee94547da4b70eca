//go:build unix

package viewport

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func (t *Terminal) width() (int, error) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoTerminal, err)
	}
	if ws.Xpixel > 0 {
		return int(ws.Xpixel), nil
	}
	return int(ws.Col) * t.cellWidth, nil
}

func (t *Terminal) notify(out chan<- struct{}, done <-chan struct{}) func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGWINCH)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-sig:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return func() { signal.Stop(sig) }
}
