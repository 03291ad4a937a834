package swiper

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/xqrs/swipeview/internal/debug"
)

// LoadFunc produces the content of one child. It runs off the UI thread.
type LoadFunc[T any] func(ctx context.Context, index int) (T, error)

// Loader realizes child content in the background. Loads of the same index
// are shared, and completion is posted back through the scheduler so that
// onReady always runs on the UI thread. Until a value is ready the child is
// expected to measure as zero.
type Loader[T any] struct {
	load      LoadFunc[T]
	scheduler Scheduler
	onReady   func(index int, v T, err error)

	group  singleflight.Group
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	values  map[int]T
	errs    map[int]error
	pending map[int]bool
}

// NewLoader returns a loader that calls load for missing indices. onReady
// may be nil.
func NewLoader[T any](load LoadFunc[T], scheduler Scheduler, onReady func(index int, v T, err error)) *Loader[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader[T]{
		load:      load,
		scheduler: scheduler,
		onReady:   onReady,
		ctx:       ctx,
		cancel:    cancel,
		values:    make(map[int]T),
		errs:      make(map[int]error),
		pending:   make(map[int]bool),
	}
}

// Get returns the loaded value for index. A missing value starts a
// background load and reports false. An index whose load failed is not
// loaded again until it is invalidated.
func (l *Loader[T]) Get(index int) (T, bool) {
	l.mu.Lock()
	v, ok := l.values[index]
	l.mu.Unlock()
	if !ok {
		l.start(index)
	}
	return v, ok
}

// Err returns the error of the last failed load of index.
func (l *Loader[T]) Err(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errs[index]
}

// Load blocks until index is loaded, sharing the work with a background
// load already in flight.
func (l *Loader[T]) Load(ctx context.Context, index int) (T, error) {
	l.mu.Lock()
	v, ok := l.values[index]
	l.mu.Unlock()
	if ok {
		return v, nil
	}
	ch := l.group.DoChan(strconv.Itoa(index), func() (any, error) {
		return l.load(l.ctx, index)
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		value, _ := res.Val.(T)
		l.store(index, value, res.Err)
		if res.Err != nil {
			return value, fmt.Errorf("load item %d: %w", index, res.Err)
		}
		return value, nil
	}
}

// Prefetch starts background loads for indices that are not loaded.
func (l *Loader[T]) Prefetch(indices []int) {
	for _, index := range indices {
		l.start(index)
	}
}

// Invalidate drops the loaded value or the error of index so the next Get
// loads it again.
func (l *Loader[T]) Invalidate(index int) {
	l.mu.Lock()
	delete(l.values, index)
	delete(l.errs, index)
	l.mu.Unlock()
	l.group.Forget(strconv.Itoa(index))
}

// Close cancels outstanding loads and waits for their goroutines.
func (l *Loader[T]) Close() {
	l.cancel()
	l.wg.Wait()
}

func (l *Loader[T]) start(index int) {
	l.mu.Lock()
	_, loaded := l.values[index]
	_, failed := l.errs[index]
	if loaded || failed || l.pending[index] || l.ctx.Err() != nil {
		l.mu.Unlock()
		return
	}
	l.pending[index] = true
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		res, err, shared := l.group.Do(strconv.Itoa(index), func() (any, error) {
			return l.load(l.ctx, index)
		})
		value, _ := res.(T)
		l.store(index, value, err)
		debug.LogIf(err != nil, "lazy: load %d failed: %v", index, err)
		debug.LogIf(shared, "lazy: load %d shared", index)
		if l.ctx.Err() != nil || l.onReady == nil || l.scheduler == nil {
			return
		}
		if err != nil {
			err = fmt.Errorf("load item %d: %w", index, err)
		}
		l.scheduler.Post(func() {
			l.onReady(index, value, err)
		})
	}()
}

func (l *Loader[T]) store(index int, v T, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, index)
	if err != nil {
		l.errs[index] = err
		return
	}
	l.values[index] = v
	delete(l.errs, index)
}
