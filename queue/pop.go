package queue

import (
	"context"

	"github.com/yanet-platform/shmqueue/frame"
	"github.com/yanet-platform/shmqueue/internal/spin"
	"github.com/yanet-platform/shmqueue/page"
)

// Pop returns the message at cursor, or a Result whose Status reports
// why none was returned. The caller owns the cursor: on
// StatusSuccess it must advance by Result.Len plus the framing's
// per-message overhead (queue.Framing().FrameSize(Result.Len)) before
// calling Pop again.
//
// Pop may block inside the horizon acquisition spin-wait while a
// writer is mid-copy. There is no timeout in the protocol itself; ctx
// is the caller's only way to give up on a stalled page (e.g. one
// with a crashed writer pinning the writer count above zero).
func (q *Queue) Pop(ctx context.Context, cursor int) (Result, error) {
	hdr := q.page.Header()
	buf := q.page.Buf()
	capacity := q.page.Capacity()

	horizon := hdr.LastSafeWriteIdx.Load()
	if int(horizon) <= cursor {
		word, err := spin.Wait(ctx, hdr.WriteIdxLock.Load, func(w uint64) bool {
			return page.Writers(w) == 0
		})
		if err != nil {
			return Result{}, err
		}

		horizon = page.Offset(word)
		hdr.LastSafeWriteIdx.Store(horizon)
	}

	end := int(horizon)
	if end > capacity {
		end = capacity
	}

	if end <= cursor {
		return Result{Status: frame.StatusEmpty}, nil
	}

	if q.framing.IsEndOfPage(buf, cursor) {
		return Result{Status: frame.StatusFinished}, nil
	}

	return q.framing.Decode(buf, cursor, end), nil
}
