package dataclient

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/dikaipan/rocdashboard-sub001/internal/csvutil"
)

type inflightCall struct {
	done chan struct{}
	data json.RawMessage
	err  error
}

// sharedGet coalesces concurrent reads of the same path into one request.
// The winning goroutine stores the result in the client cache; everyone
// waits on the same call.
func (c *Client) sharedGet(path string) *inflightCall {
	c.mu.Lock()
	if call, ok := c.inflight[path]; ok {
		c.mu.Unlock()
		return call
	}
	call := &inflightCall{done: make(chan struct{})}
	c.inflight[path] = call
	c.mu.Unlock()

	go func() {
		data, err := c.send(context.Background(), http.MethodGet, path, "fetch", nil)
		call.data, call.err = data, err

		c.mu.Lock()
		delete(c.inflight, path)
		if err == nil {
			c.cache[path] = data
		}
		c.mu.Unlock()
		close(call.done)
	}()
	return call
}

func (c *Client) cachedGet(path string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.cache[path]
	return data, ok
}

// InvalidateCache drops the cached response for path, forcing the next
// read to hit the network.
func (c *Client) InvalidateCache(path string) {
	c.mu.Lock()
	delete(c.cache, path)
	c.mu.Unlock()
}

// ResourceOptions configures one Resource.
type ResourceOptions struct {
	// UseCache serves the cached response immediately while a background
	// refresh runs. When false every read blocks on a fresh round trip.
	UseCache bool
	// Event names the bus topic whose notifications trigger a refetch.
	Event string
	// FallbackCSV is a bundled legacy fixture served when the backend is
	// unreachable and no data has been loaded yet.
	FallbackCSV []byte
}

// Resource is one subscribed read of a backend collection. It tracks
// data / loading / error exactly as the consuming view needs them and
// refreshes itself when its event topic fires.
type Resource struct {
	c    *Client
	path string
	opts ResourceOptions

	mu      sync.Mutex
	data    json.RawMessage
	loading bool
	err     error
	closed  bool

	unsub func()
}

// Resource builds a resource for path and, when an event is configured,
// subscribes it for refreshes until Close.
func (c *Client) Resource(path string, opts ResourceOptions) *Resource {
	r := &Resource{c: c, path: path, opts: opts}
	if opts.Event != "" && c.bus != nil {
		r.unsub = c.bus.Subscribe(opts.Event, func() { r.Refresh() })
	}
	return r
}

// Refresh re-reads the resource. With UseCache the cached value is served
// immediately and the network result lands later; without it the resource
// reports loading until the round trip finishes. The returned channel
// closes once the result (or the fallback) has been applied.
func (r *Resource) Refresh() <-chan struct{} {
	done := make(chan struct{})

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		close(done)
		return done
	}
	if cached, ok := r.c.cachedGet(r.path); r.opts.UseCache && ok {
		r.data = cached
		r.err = nil
	} else {
		r.loading = true
	}
	r.mu.Unlock()

	call := r.c.sharedGet(r.path)
	go func() {
		<-call.done
		r.apply(call.data, call.err)
		close(done)
	}()
	return done
}

// apply writes a fetch result into the resource. Results arriving after
// Close are dropped so a dismissed view never sees late updates. A failed
// fetch keeps the previous data; if nothing was ever loaded the bundled
// CSV fallback takes its place.
func (r *Resource) apply(data json.RawMessage, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.loading = false

	if err != nil {
		if len(r.opts.FallbackCSV) > 0 && r.data == nil {
			if rows, convErr := csvRowsJSON(r.opts.FallbackCSV); convErr == nil {
				log.Printf("[WARN] dataclient: %s unreachable, serving bundled fallback: %v", r.path, err)
				r.data = rows
				r.err = nil
				return
			}
		}
		r.err = err
		return
	}
	r.data = data
	r.err = nil
}

// Snapshot returns the current data, loading and error state.
func (r *Resource) Snapshot() (json.RawMessage, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.loading, r.err
}

// Load blocks until the resource has a current value. With UseCache a
// cached value returns immediately while a refresh continues in the
// background.
func (r *Resource) Load(ctx context.Context) (json.RawMessage, error) {
	if r.opts.UseCache {
		if cached, ok := r.c.cachedGet(r.path); ok {
			r.mu.Lock()
			r.data = cached
			r.mu.Unlock()
			r.Refresh()
			return cached, nil
		}
	}

	done := r.Refresh()
	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.err
}

// Decode unmarshals the current data into v. With no data yet it reports
// the resource error, or nothing at all when still loading.
func (r *Resource) Decode(v any) error {
	r.mu.Lock()
	data, err := r.data, r.err
	r.mu.Unlock()
	if data == nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Close unsubscribes the resource and drops any late fetch results.
func (r *Resource) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	if r.unsub != nil {
		r.unsub()
	}
}

// csvRowsJSON converts a bundled CSV fixture into the JSON array shape the
// backend would have returned.
func csvRowsJSON(data []byte) (json.RawMessage, error) {
	_, rows, err := csvutil.Decode(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rows)
}
