//go:build unix

package queue_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/yanet-platform/shmqueue/common/go/xerror"
	"github.com/yanet-platform/shmqueue/frame"
	"github.com/yanet-platform/shmqueue/page"
	"github.com/yanet-platform/shmqueue/queue"
)

// pagePath builds an absolute page path for a test's temp dir.
// filepath.Abs only fails when the working directory is gone, which
// cannot happen mid-test, so the test fixtures use xerror.Unwrap
// instead of threading a require.NoError through every call site.
func pagePath(t *testing.T, name string) string {
	return xerror.Unwrap(filepath.Abs(filepath.Join(t.TempDir(), name)))
}

func TestPushPopSingleMessage(t *testing.T) {
	path := pagePath(t, "q.page")

	q, err := queue.Open(path, 4*datasize.KB, frame.Scan)
	require.NoError(t, err)
	defer q.Close()

	n, err := q.Push([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 6, n) // 5 payload bytes + terminator

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result, err := q.Pop(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.StatusSuccess, result.Status)
	assert.Equal(t, []byte("hello"), result.Data)

	result, err = q.Pop(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, frame.StatusEmpty, result.Status)
}

func TestLengthPrefixedPushPop(t *testing.T) {
	path := pagePath(t, "q.page")

	q, err := queue.Open(path, 4*datasize.KB, frame.LengthPrefixed)
	require.NoError(t, err)
	defer q.Close()

	_, err = q.Push([]byte("world"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result, err := q.Pop(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.StatusSuccess, result.Status)
	assert.Equal(t, []byte("world"), result.Data)
}

func TestConcurrentWritersNoInterleave(t *testing.T) {
	path := pagePath(t, "q.page")

	q, err := queue.Open(path, 64*datasize.KB, frame.Scan)
	require.NoError(t, err)
	defer q.Close()

	const writers = 8
	const perWriter = 50

	var wg errgroup.Group
	for w := 0; w < writers; w++ {
		w := w
		wg.Go(func() error {
			for i := 0; i < perWriter; i++ {
				payload := []byte(fmt.Sprintf("w%d-m%d", w, i))
				if _, err := q.Push(payload); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, wg.Wait())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seen := make(map[string]bool)
	cursor := 0
	for {
		result, err := q.Pop(ctx, cursor)
		require.NoError(t, err)
		if result.Status == frame.StatusEmpty {
			break
		}
		require.Equal(t, frame.StatusSuccess, result.Status)

		msg := string(result.Data)
		require.False(t, seen[msg], "message %q decoded twice, framing desynced", msg)
		seen[msg] = true
		cursor += q.Framing().FrameSize(result.Len)
	}

	assert.Len(t, seen, writers*perWriter)
}

func TestPushReturnsErrPageFullWhenExhausted(t *testing.T) {
	path := pagePath(t, "q.page")

	q, err := queue.Open(path, 16, frame.Scan)
	require.NoError(t, err)
	defer q.Close()

	_, err = q.Push(make([]byte, 10))
	require.NoError(t, err)

	_, err = q.Push(make([]byte, 10))
	assert.ErrorIs(t, err, queue.ErrPageFull)
}

func TestPopObservesEndOfPageSentinel(t *testing.T) {
	path := pagePath(t, "q.page")

	q, err := queue.Open(path, 16, frame.Scan)
	require.NoError(t, err)
	defer q.Close()

	n, err := q.Push(make([]byte, 10))
	require.NoError(t, err)

	_, err = q.Push(make([]byte, 10))
	require.ErrorIs(t, err, queue.ErrPageFull)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result, err := q.Pop(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, frame.StatusFinished, result.Status)
}

func TestPopBlocksUntilInFlightWriterReleases(t *testing.T) {
	path := pagePath(t, "q.page")

	q, err := queue.Open(path, 4*datasize.KB, frame.Scan)
	require.NoError(t, err)
	defer q.Close()

	hdr := q.Page().Header()
	start := page.Reserve(&hdr.WriteIdxLock, 6) // reserve "abcde"+terminator without publishing yet

	resultCh := make(chan frame.Result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		result, err := q.Pop(ctx, 0)
		require.NoError(t, err)
		resultCh <- result
	}()

	select {
	case <-resultCh:
		t.Fatal("Pop returned before the in-flight writer released its reservation")
	case <-time.After(50 * time.Millisecond):
	}

	frame.Scan.Encode(q.Page().Buf(), int(start), []byte("abcde"))
	page.Release(&hdr.WriteIdxLock)

	select {
	case result := <-resultCh:
		assert.Equal(t, frame.StatusSuccess, result.Status)
		assert.Equal(t, []byte("abcde"), result.Data)
	case <-time.After(5 * time.Second):
		t.Fatal("Pop never observed the released horizon")
	}
}

func TestCrossProcessHandlesShareState(t *testing.T) {
	// Simulates two independent processes opening the same page path:
	// each gets its own *page.Page/*queue.Queue, but the mmap'd file
	// backs both, so a write through one becomes visible to the other.
	path := pagePath(t, "q.page")

	writer, err := queue.Open(path, 4*datasize.KB, frame.Scan)
	require.NoError(t, err)
	defer writer.Close()

	reader, err := queue.Open(path, 4*datasize.KB, frame.Scan)
	require.NoError(t, err)
	defer reader.Close()

	_, err = writer.Push([]byte("cross-process"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result, err := reader.Pop(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.StatusSuccess, result.Status)
	assert.Equal(t, []byte("cross-process"), result.Data)
}

func TestPopCanceledByContext(t *testing.T) {
	path := pagePath(t, "q.page")

	q, err := queue.Open(path, 4*datasize.KB, frame.Scan)
	require.NoError(t, err)
	defer q.Close()

	hdr := q.Page().Header()
	page.Reserve(&hdr.WriteIdxLock, 5) // leaves a writer permanently in flight

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = q.Pop(ctx, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConcurrentPushersRaceOverSingleWord(t *testing.T) {
	// A lower-level property test on page.Reserve/Release: with N
	// goroutines reserving concurrently, the union of reserved ranges
	// must tile [0,N*need) with no overlaps and no gaps.
	path := pagePath(t, "q.page")
	p, err := page.Open(path, page.Config{Capacity: 1 << 20})
	require.NoError(t, err)
	defer p.Close()

	const n = 200
	const need = 10

	starts := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			starts[i] = page.Reserve(&p.Header().WriteIdxLock, need)
			page.Release(&p.Header().WriteIdxLock)
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, s := range starts {
		assert.False(t, seen[s], "reservation start %d handed out twice", s)
		seen[s] = true
	}
	assert.Equal(t, uint64(0), page.Writers(p.Header().WriteIdxLock.Load()))
	assert.Equal(t, uint64(n*need), page.Offset(p.Header().WriteIdxLock.Load()))
}
