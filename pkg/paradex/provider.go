package paradex

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Provider owns the lazily-initialized client handle. Initialization is
// single-flight: concurrent first callers share one attempt and receive the
// same eventual client. The mode (public or authenticated) is fixed by the
// options for the process lifetime; a failed initialization is not cached,
// so a later call may retry.
type Provider struct {
	opts Options

	group  singleflight.Group
	mu     sync.RWMutex
	client *Client
}

func NewProvider(opts Options) *Provider {
	return &Provider{opts: opts}
}

// Authenticated reports whether the configuration carries a signing
// credential. It never touches the network, so callers can fail fast before
// any upstream call.
func (p *Provider) Authenticated() bool {
	return p.opts.PrivateKey != ""
}

// Client returns the shared client, initializing it on first use.
func (p *Provider) Client(ctx context.Context) (*Client, error) {
	p.mu.RLock()
	c := p.client
	p.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	v, err, _ := p.group.Do("connect", func() (any, error) {
		p.mu.RLock()
		existing := p.client
		p.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		client := NewClient(p.opts)
		if p.opts.PrivateKey != "" {
			if err := client.Authenticate(ctx, p.opts.AccountAddress, p.opts.PrivateKey); err != nil {
				return nil, err
			}
		}

		p.mu.Lock()
		p.client = client
		p.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Client), nil
}
