// Package queue implements the Write Protocol and Read Protocol: it
// reserves byte ranges, copies payloads, publishes completion, and
// decodes messages back out, all synchronized through the single
// atomic word on a page.Page's Header.
package queue

import (
	"errors"
	"fmt"

	"github.com/c2h5oh/datasize"

	"github.com/yanet-platform/shmqueue/frame"
	"github.com/yanet-platform/shmqueue/page"
)

// ErrPageFull is Push's only failure mode: the page has no room left
// for the requested frame. It is terminal for the page — Push never
// retries and a caller that gets it must route the message elsewhere.
var ErrPageFull = errors.New("queue: page full")

// Result and Status are re-exported from frame for callers that only
// need the queue package.
type (
	Result = frame.Result
	Status = frame.Status
)

const (
	StatusSuccess  = frame.StatusSuccess
	StatusFinished = frame.StatusFinished
	StatusEmpty    = frame.StatusEmpty
	StatusError    = frame.StatusError
)

// Queue binds a Page to one Framing variant. Both sides of an IPC
// pair must open the same path with the same Framing; the queue has
// no way to detect a mismatch, it will simply misdecode.
type Queue struct {
	page    *page.Page
	framing frame.Framing
}

// Open opens or creates the page at path with the given capacity and
// framing variant.
func Open(path string, capacity datasize.ByteSize, framing frame.Framing) (*Queue, error) {
	p, err := page.Open(path, page.Config{Capacity: capacity})
	if err != nil {
		return nil, fmt.Errorf("queue: %w", err)
	}

	return &Queue{page: p, framing: framing}, nil
}

// Close unmaps the underlying page. It does not delete the file.
func (q *Queue) Close() error {
	return q.page.Close()
}

// Path returns the backing file path.
func (q *Queue) Path() string {
	return q.page.Path()
}

// Framing returns the variant this Queue was opened with.
func (q *Queue) Framing() frame.Framing {
	return q.framing
}

// Page exposes the underlying Page, for callers (like the queue tests)
// that need raw header access without going through Push/Pop.
func (q *Queue) Page() *page.Page {
	return q.page
}
