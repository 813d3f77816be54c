package app

import (
	"context"
	"sync"
)

// Lazy builds the container on first use so that commands which fail
// argument validation never touch the config file or the temp stores.
type Lazy struct {
	Verbose bool

	once      sync.Once
	container *Container
	err       error
}

// Preloaded wraps an already built container.
func Preloaded(container *Container) *Lazy {
	l := &Lazy{}
	l.once.Do(func() { l.container = container })
	return l
}

// Get returns the container, building it on the first call.
func (l *Lazy) Get(ctx context.Context) (*Container, error) {
	l.once.Do(func() {
		l.container, l.err = BuildContainer(ctx, l.Verbose)
	})
	return l.container, l.err
}

// Built reports whether the container has been constructed.
func (l *Lazy) Built() bool {
	return l.container != nil
}

// Close releases the container if it was built.
func (l *Lazy) Close() error {
	if l.container == nil {
		return nil
	}
	return l.container.Close()
}
