package mock

import (
	"context"

	"github.com/fwojciec/bizscan"
)

var _ bizscan.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bizscan.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ bizscan.FetchGateway = (*FetchGateway)(nil)

// FetchGateway is a mock implementation of bizscan.FetchGateway.
type FetchGateway struct {
	GetFn func(ctx context.Context, url string) bizscan.FetchResult
}

func (g *FetchGateway) Get(ctx context.Context, url string) bizscan.FetchResult {
	return g.GetFn(ctx, url)
}

var _ bizscan.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of bizscan.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
