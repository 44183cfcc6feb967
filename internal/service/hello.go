// Package service implements the greeting: one upstream fetch per call,
// reported through Events, with a fixed reply regardless of the outcome.
package service

import (
	"context"

	"hello-upstream/internal/client"
	"hello-upstream/internal/model"
)

// Greeting is the body returned for every GET /.
const Greeting = "hello"

// Fetcher retrieves and parses the upstream resource.
type Fetcher interface {
	Fetch(ctx context.Context) (*model.FetchResult, error)
}

// Events receives the outcome of each upstream fetch.
type Events interface {
	Fetched(ctx context.Context, res *model.FetchResult)
	FetchFailed(ctx context.Context, kind model.FailureKind, err error)
}

// HelloService performs the upstream call behind GET /.
type HelloService struct {
	fetcher Fetcher
	events  Events
}

// NewHelloService creates a HelloService.
func NewHelloService(f Fetcher, ev Events) *HelloService {
	return &HelloService{fetcher: f, events: ev}
}

// Greet fetches the upstream, reports the result and returns Greeting.
// Upstream failures never reach the caller.
func (s *HelloService) Greet(ctx context.Context) string {
	res, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.events.FetchFailed(ctx, client.Classify(err), err)
		return Greeting
	}
	s.events.Fetched(ctx, res)
	return Greeting
}
