// Package viewport classifies the display width into the two layouts the
// catalog knows about and tracks it as the terminal is resized.
package viewport

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mediacatalog/internal/logging"
)

// Breakpoint is the first width, in pixels, that counts as wide.
const Breakpoint = 768

type Class string

const (
	Narrow Class = "narrow"
	Wide   Class = "wide"
)

func Classify(width int) Class {
	if width < Breakpoint {
		return Narrow
	}
	return Wide
}

// Pick returns the asset variant for the class: small when narrow, large when wide.
func (c Class) Pick(small, large string) string {
	if c == Narrow {
		return small
	}
	return large
}

// Source reports the current width and signals when it may have changed.
// The returned stop function releases the subscription and may be called
// more than once.
type Source interface {
	Width() (int, error)
	Subscribe() (changes <-chan struct{}, stop func())
}

// Classifier keeps the last sampled width and its class.
type Classifier struct {
	src    Source
	logger logging.Logger

	mu    sync.Mutex
	width int
	class Class
}

func NewClassifier(src Source, logger logging.Logger) *Classifier {
	return &Classifier{
		src:    src,
		logger: logger.With("module", "viewport"),
		class:  Wide,
	}
}

// Observe records a width sample and returns its class.
func (c *Classifier) Observe(width int) Class {
	class := Classify(width)

	c.mu.Lock()
	c.width = width
	c.class = class
	c.mu.Unlock()

	return class
}

// Current is the last observed width and class. Until the first sample the
// class is Wide and the width is zero.
func (c *Classifier) Current() (int, Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.class
}

// Refresh samples the source once.
func (c *Classifier) Refresh() (Class, error) {
	w, err := c.src.Width()
	if err != nil {
		return c.currentClass(), err
	}
	return c.Observe(w), nil
}

// Watch samples the source now and again on every change signal until ctx
// is done. The subscription is released on return.
func (c *Classifier) Watch(ctx context.Context) error {
	changes, stop := c.src.Subscribe()
	defer stop()

	c.sample(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			c.sample(ctx)
		}
	}
}

func (c *Classifier) sample(ctx context.Context) {
	class, err := c.Refresh()
	if err != nil {
		c.logger.Debug(ctx, "width unavailable", "error", err)
		return
	}
	c.logger.Debug(ctx, "viewport sampled", "class", class)
}

func (c *Classifier) currentClass() Class {
	_, class := c.Current()
	return class
}
