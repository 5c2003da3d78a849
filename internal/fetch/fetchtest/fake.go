// Package fetchtest provides an in-memory fetch.Fetcher for tests.
package fetchtest

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Bahjat/site-audit-tool/internal/fetch"
)

// Request is one recorded call to Fake.Fetch.
type Request struct {
	URL  string
	Opts fetch.Options
}

// Fake answers fetches from a table of canned results. Each URL maps to a
// sequence of results consumed one per call; the last one repeats. Unknown
// URLs answer 404.
type Fake struct {
	// Delay is slept before every answer, honouring context cancellation.
	Delay time.Duration

	mu        sync.Mutex
	responses map[string][]fetch.Result
	requests  []Request

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string][]fetch.Result)}
}

// Add queues results for url.
func (f *Fake) Add(url string, results ...fetch.Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = append(f.responses[url], results...)
	return f
}

// HTML queues a 200 text/html response with body for url.
func (f *Fake) HTML(url, body string) *Fake {
	return f.Add(url, fetch.Result{
		StatusCode:  http.StatusOK,
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	})
}

// Status queues a bodiless response with the given status for url.
func (f *Fake) Status(url string, status int) *Fake {
	return f.Add(url, fetch.Result{StatusCode: status})
}

// Fetch implements fetch.Fetcher.
func (f *Fake) Fetch(ctx context.Context, url string, opts fetch.Options) fetch.Result {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		old := f.maxInFlight.Load()
		if n <= old || f.maxInFlight.CompareAndSwap(old, n) {
			break
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, Request{URL: url, Opts: opts})
	res := fetch.Result{StatusCode: http.StatusNotFound}
	if queue := f.responses[url]; len(queue) > 0 {
		res = queue[0]
		if len(queue) > 1 {
			f.responses[url] = queue[1:]
		}
	}
	f.mu.Unlock()

	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return fetch.Result{URL: url, Err: ctx.Err()}
		}
	}

	res.URL = url
	return res
}

// Requests returns the calls made so far, in order.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Calls counts the calls made for url.
func (f *Fake) Calls(url string) int {
	var n int
	for _, r := range f.Requests() {
		if r.URL == url {
			n++
		}
	}
	return n
}

// MaxInFlight is the highest number of concurrent Fetch calls observed.
func (f *Fake) MaxInFlight() int {
	return int(f.maxInFlight.Load())
}
