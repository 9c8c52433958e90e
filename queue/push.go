package queue

import (
	"github.com/yanet-platform/shmqueue/frame"
	"github.com/yanet-platform/shmqueue/page"
)

// Push reserves space for payload, copies it into the page, and
// publishes it. It never blocks, never retries, and never allocates
// beyond the caller-owned payload slice.
//
// On success it returns the total number of buffer bytes the frame
// consumed (the value the caller must add to its cursor to reach the
// next message). On failure it returns ErrPageFull; the page is
// permanently out of room for any future Push of a byte range that
// would need to start where this one did.
func (q *Queue) Push(payload []byte) (int, error) {
	hdr := q.page.Header()
	buf := q.page.Buf()
	capacity := q.page.Capacity()

	need := q.framing.FrameSize(len(payload))
	start := int(page.Reserve(&hdr.WriteIdxLock, uint64(need)))

	fits, sentinelAt, writeSentinel := q.framing.Reserve(start, len(payload), capacity)
	if !fits {
		if writeSentinel {
			buf[sentinelAt] = frame.EndOfPage
		}
		// The offset bits of write_idx_lock stay advanced: a lost
		// reservation is never reclaimed, only the writer-count unit
		// that was added for it is released.
		page.Release(&hdr.WriteIdxLock)
		return 0, ErrPageFull
	}

	q.framing.Encode(buf, start, payload)

	// The sole synchronization edge that publishes payload bytes to
	// readers; the Release on the abort path above does the same for the
	// 0xFD sentinel.
	page.Release(&hdr.WriteIdxLock)

	return need, nil
}
