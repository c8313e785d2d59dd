// Package appctx provides a request-scoped memo for application services.
//
// A RequestContext is created per HTTP request by middleware and carried in
// the request's context.Context:
//
//	rc := appctx.FromContext(ctx)
//	u, err := appctx.GetOrFetch(rc, "user:"+id, fetchUser)
//
// Services that run outside an HTTP request get a fresh, private
// RequestContext from FromContext, so memoization is always available.
package appctx

import (
	"context"
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned by GetOrFetch when a cached value's type does
// not match the requested type T. This indicates a programming error where
// the same cache key is used with different types.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext is a request-scoped context wrapper providing in-memory
// memoization via GetOrFetch.
//
// A RequestContext is strictly request-scoped: create a new instance for each
// HTTP request. It is NOT safe for concurrent use from multiple goroutines.
type RequestContext struct {
	context.Context
	cache map[string]cacheEntry
}

// cacheEntry stores the result of a GetOrFetch call, including any error.
// Both successful results and errors are cached to prevent redundant calls
// within the same request.
type cacheEntry struct {
	value any
	err   error
}

// New creates a RequestContext wrapping the given context.Context.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{
		Context: ctx,
		cache:   make(map[string]cacheEntry),
	}
}

type contextKey struct{}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, or a new one bound to
// ctx when none is present.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(contextKey{}).(*RequestContext); ok {
		return rc
	}
	return New(ctx)
}

// GetOrFetch returns a cached value for the given key, or calls fetchFn to
// fetch and cache it. Both successful results and errors are cached to
// prevent redundant calls within the same request.
//
// The same key must always be used with the same type T. If a cached value
// exists but its type does not match T, GetOrFetch returns ErrTypeMismatch.
// Use DataProvider for type-safe, reusable fetch bindings that prevent this.
func GetOrFetch[T any](rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	if entry, ok := rc.cache[key]; ok {
		if entry.err != nil {
			var zero T
			return zero, entry.err
		}
		v, ok := entry.value.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
		}
		return v, nil
	}

	val, err := fetchFn(rc.Context)
	rc.cache[key] = cacheEntry{value: val, err: err}
	return val, err
}

// Forget drops the cached entry for key so the next GetOrFetch fetches again.
func (rc *RequestContext) Forget(key string) {
	delete(rc.cache, key)
}

// Len returns the number of memoized entries, errors included.
func (rc *RequestContext) Len() int {
	return len(rc.cache)
}

// DataProvider is a type-safe wrapper around GetOrFetch for a specific data
// type. It binds a key prefix and fetch function together.
type DataProvider[T any] struct {
	prefix  string
	fetchFn func(ctx context.Context, id string) (T, error)
}

// NewDataProvider creates a DataProvider whose cache keys are prefix+":"+id.
func NewDataProvider[T any](prefix string, fetchFn func(ctx context.Context, id string) (T, error)) *DataProvider[T] {
	return &DataProvider[T]{prefix: prefix, fetchFn: fetchFn}
}

// Get returns the cached value for id or fetches it.
func (p *DataProvider[T]) Get(rc *RequestContext, id string) (T, error) {
	return GetOrFetch(rc, p.prefix+":"+id, func(ctx context.Context) (T, error) {
		return p.fetchFn(ctx, id)
	})
}
