package app

import (
	"context"
	"sync"
)

// Provider builds the Container on first use, after flags are parsed.
type Provider struct {
	Options Options

	once      sync.Once
	container *Container
	err       error
}

// NewProvider returns a provider seeded with opts.
func NewProvider(opts Options) *Provider {
	return &Provider{Options: opts}
}

// Get returns the container, building it once.
func (p *Provider) Get(ctx context.Context) (*Container, error) {
	p.once.Do(func() {
		p.container, p.err = BuildContainer(ctx, p.Options)
	})
	return p.container, p.err
}

// Close releases the container if it was built.
func (p *Provider) Close() error {
	if p.container == nil {
		return nil
	}
	return p.container.Close()
}
