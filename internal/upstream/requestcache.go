package upstream

import (
	"context"
	"sync"
)

type contextKey struct{}

// RequestCache memoizes GET responses for the lifetime of one inbound
// GraphQL operation. Concurrent field resolvers asking for the same URL
// share a single in-flight upstream call. The cache is installed fresh per
// request and discarded with it; nothing survives across operations.
type RequestCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	done chan struct{}
	resp *Response
	err  error
}

// WithRequestCache installs a fresh cache on the context.
func WithRequestCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, &RequestCache{entries: make(map[string]*cacheEntry)})
}

func requestCacheFrom(ctx context.Context) *RequestCache {
	rc, _ := ctx.Value(contextKey{}).(*RequestCache)
	return rc
}

// claim returns the entry for key. The second return is true when the caller
// is the first claimant and must perform the request and complete the entry.
func (rc *RequestCache) claim(key string) (*cacheEntry, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if e, ok := rc.entries[key]; ok {
		return e, false
	}
	e := &cacheEntry{done: make(chan struct{})}
	rc.entries[key] = e
	return e, true
}

// invalidate drops the entry for key. Writes call this so a later GET
// observes the post-write state.
func (rc *RequestCache) invalidate(key string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	delete(rc.entries, key)
}

func (e *cacheEntry) complete(resp *Response, err error) {
	e.resp = resp
	e.err = err
	close(e.done)
}

func (e *cacheEntry) wait(ctx context.Context) (*Response, error) {
	select {
	case <-e.done:
		return e.resp, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
