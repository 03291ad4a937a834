package swiper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanScheduler hands posted callbacks to the test goroutine.
type chanScheduler struct {
	posted chan func()
}

func newChanScheduler() *chanScheduler {
	return &chanScheduler{posted: make(chan func(), 16)}
}

func (s *chanScheduler) AfterFunc(time.Duration, func()) func() bool {
	return func() bool { return false }
}

func (s *chanScheduler) Post(f func()) {
	s.posted <- f
}

func (s *chanScheduler) next(t *testing.T) {
	t.Helper()
	select {
	case f := <-s.posted:
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("nothing was posted")
	}
}

func TestLoaderGetLoadsInBackground(t *testing.T) {
	s := newChanScheduler()
	var ready []int
	l := NewLoader(func(_ context.Context, i int) (string, error) {
		return fmt.Sprintf("item-%d", i), nil
	}, s, func(i int, v string, err error) {
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("item-%d", i), v)
		ready = append(ready, i)
	})
	defer l.Close()

	_, ok := l.Get(2)
	assert.False(t, ok)
	s.next(t)

	assert.Equal(t, []int{2}, ready)
	v, ok := l.Get(2)
	require.True(t, ok)
	assert.Equal(t, "item-2", v)
}

func TestLoaderLoadCachesValue(t *testing.T) {
	var calls atomic.Int32
	l := NewLoader(func(_ context.Context, i int) (int, error) {
		calls.Add(1)
		return i * 10, nil
	}, nil, nil)
	defer l.Close()

	v, err := l.Load(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 40, v)

	l.Prefetch([]int{4})
	v, ok := l.Get(4)
	require.True(t, ok)
	assert.Equal(t, 40, v)
	assert.Equal(t, int32(1), calls.Load())

	l.Invalidate(4)
	v, err = l.Load(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 40, v)
	assert.Equal(t, int32(2), calls.Load())
}

var errBroken = errors.New("broken")

func TestLoaderReportsErrors(t *testing.T) {
	s := newChanScheduler()
	var got error
	l := NewLoader(func(_ context.Context, i int) (string, error) {
		return "", errBroken
	}, s, func(_ int, _ string, err error) {
		got = err
	})
	defer l.Close()

	_, err := l.Load(context.Background(), 3)
	require.ErrorIs(t, err, errBroken)
	assert.EqualError(t, err, "load item 3: broken")
	assert.ErrorIs(t, l.Err(3), errBroken)

	l.Get(5)
	s.next(t)
	assert.ErrorIs(t, got, errBroken)
	_, ok := l.Get(5)
	assert.False(t, ok)
}

func TestLoaderDoesNotRetryFailedLoads(t *testing.T) {
	s := newChanScheduler()
	var calls atomic.Int32
	l := NewLoader(func(_ context.Context, _ int) (string, error) {
		calls.Add(1)
		return "", errBroken
	}, s, func(int, string, error) {})
	defer l.Close()

	l.Get(1)
	s.next(t)
	for range 4 {
		_, ok := l.Get(1)
		assert.False(t, ok)
	}
	l.Prefetch([]int{1})
	assert.Equal(t, int32(1), calls.Load())
	assert.ErrorIs(t, l.Err(1), errBroken)

	l.Invalidate(1)
	assert.NoError(t, l.Err(1))
	l.Get(1)
	s.next(t)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoaderLoadHonorsContext(t *testing.T) {
	l := NewLoader(func(ctx context.Context, _ int) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}, nil, nil)
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderCloseSuppressesReady(t *testing.T) {
	s := newChanScheduler()
	l := NewLoader(func(ctx context.Context, _ int) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}, s, func(int, string, error) {
		t.Error("onReady called after Close")
	})

	l.Prefetch([]int{0, 1})
	l.Close()

	assert.Empty(t, s.posted)
	_, ok := l.Get(0)
	assert.False(t, ok)
}

type recordingPrefetcher struct {
	calls [][]int
}

func (r *recordingPrefetcher) Prefetch(indices []int) {
	r.calls = append(r.calls, indices)
}

func TestPatternPrefetchesAroundSettledWindow(t *testing.T) {
	f := newFixture(t, nonLoop(), 5)
	pf := &recordingPrefetcher{}
	f.p.SetPrefetcher(pf)

	f.p.ShowNext()
	f.settle(t)

	require.Len(t, pf.calls, 1)
	assert.Equal(t, []int{0, 1, 2}, pf.calls[0])
}

func TestPatternPrefetchWrapsInLoop(t *testing.T) {
	f := newFixture(t, DefaultProps(), 4)
	pf := &recordingPrefetcher{}
	f.p.SetPrefetcher(pf)

	f.p.ShowPrevious()
	f.settle(t)

	require.Len(t, pf.calls, 1)
	assert.Equal(t, []int{2, 3, 0}, pf.calls[0])
}
