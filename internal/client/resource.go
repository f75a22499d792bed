// AngelaMos | 2026
// resource.go

package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Result is what a mutation hands back: the written record or a message,
// never both.
type Result[T any] struct {
	Data  *T
	Error string
}

func (r Result[T]) OK() bool {
	return r.Error == ""
}

// Paths locate a resource. Writes default to the read path.
type Paths struct {
	Read  string
	Write string
}

// Resource holds one collection. Every successful write is followed by a
// full refetch; nothing is updated optimistically.
type Resource[T any] struct {
	client *Client
	paths  Paths

	mu      sync.RWMutex
	data    []T
	loading bool
	err     error
}

func NewResource[T any](c *Client, paths Paths) *Resource[T] {
	if paths.Write == "" {
		paths.Write = paths.Read
	}
	return &Resource[T]{client: c, paths: paths}
}

func (r *Resource[T]) Data() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

func (r *Resource[T]) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

func (r *Resource[T]) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

func (r *Resource[T]) Fetch(ctx context.Context) error {
	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()

	var data []T
	err := r.client.Do(ctx, http.MethodGet, r.paths.Read, nil, &data)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
	r.err = err
	if err == nil {
		if data == nil {
			data = []T{}
		}
		r.data = data
	}
	return err
}

func (r *Resource[T]) Create(ctx context.Context, body any) Result[T] {
	return r.mutate(ctx, http.MethodPost, r.paths.Write, body)
}

func (r *Resource[T]) Update(ctx context.Context, id string, body any) Result[T] {
	return r.mutate(ctx, http.MethodPut, r.paths.Write+"/"+url.PathEscape(id), body)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) Result[T] {
	return r.mutate(ctx, http.MethodDelete, r.paths.Write+"/"+url.PathEscape(id), nil)
}

func (r *Resource[T]) mutate(ctx context.Context, method, path string, body any) Result[T] {
	var out T
	target := any(&out)
	if method == http.MethodDelete {
		target = nil
	}

	if err := r.client.Do(ctx, method, path, body, target); err != nil {
		return Result[T]{Error: Message(err)}
	}

	// The write succeeded; a failed refetch only shows up in Err.
	_ = r.Fetch(ctx)

	if target == nil {
		return Result[T]{}
	}
	return Result[T]{Data: &out}
}
