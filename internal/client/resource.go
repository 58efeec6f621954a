package client

import (
	"context"
	"fmt"

	"github.com/DukeRupert/futureforward/internal/domain"
	"golang.org/x/sync/errgroup"
)

// entry is the single cached result for a tag. data and err are written
// once, before done is closed.
type entry struct {
	done chan struct{}
	data any
	err  error
}

func newEntry() *entry {
	return &entry{done: make(chan struct{})}
}

func (e *entry) resolve(data any, err error) {
	e.data, e.err = data, err
	close(e.done)
}

// Resource is a point-in-time view of a cached resource.
// Exactly one of IsLoading, Err != nil, or a successful Data holds.
type Resource[T any] struct {
	Data      T
	IsLoading bool
	Err       error
}

// Subscription is a handle on a tagged resource.
type Subscription[T any] struct {
	tag   Tag
	entry *entry
}

// Subscribe registers interest in tag and returns a handle on its shared
// result. Only the first subscriber for a tag triggers a request.
func Subscribe[T any](c *Client, tag Tag) *Subscription[T] {
	return &Subscription[T]{tag: tag, entry: c.acquire(tag)}
}

// Services subscribes to the service list.
func (c *Client) Services() *Subscription[[]domain.Service] {
	return Subscribe[[]domain.Service](c, TagServices)
}

// Industries subscribes to the industry list.
func (c *Client) Industries() *Subscription[[]domain.Industry] {
	return Subscribe[[]domain.Industry](c, TagIndustries)
}

// Tag returns the subscribed tag.
func (s *Subscription[T]) Tag() Tag { return s.tag }

// Snapshot reports the current state without blocking.
func (s *Subscription[T]) Snapshot() Resource[T] {
	select {
	case <-s.entry.done:
		data, err := s.value()
		return Resource[T]{Data: data, Err: err}
	default:
		return Resource[T]{IsLoading: true}
	}
}

// Wait blocks until the resource resolves or ctx is done. Cancelling ctx
// does not cancel the underlying request.
func (s *Subscription[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-s.entry.done:
		return s.value()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (s *Subscription[T]) value() (T, error) {
	var zero T
	if s.entry.err != nil {
		return zero, s.entry.err
	}
	v, ok := s.entry.data.(T)
	if !ok {
		return zero, fmt.Errorf("client: resource %q holds %T, not %T", s.tag, s.entry.data, zero)
	}
	return v, nil
}

// Prefetch subscribes to tags and waits until all of them resolve,
// returning the first error.
func (c *Client) Prefetch(ctx context.Context, tags ...Tag) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, tag := range tags {
		e := c.acquire(tag)
		g.Go(func() error {
			select {
			case <-e.done:
				if e.err != nil {
					return fmt.Errorf("prefetch %s: %w", tag, e.err)
				}
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}
