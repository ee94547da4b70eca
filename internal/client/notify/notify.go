// Package notify is the toast sink: short user-facing messages tagged with
// a kind.
package notify

import (
	"fmt"
	"io"
	"sync"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

type Sink interface {
	Notify(kind Kind, message string)
}

// Writer prints each notification on its own line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Notify(kind Kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", prefix(kind), message)
}

func prefix(kind Kind) string {
	switch kind {
	case Success:
		return "[ok]"
	case Error:
		return "[error]"
	default:
		return "[info]"
	}
}
