package swipeview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostGivesUpWhenLoopStops(t *testing.T) {
	a := NewApplication()
	for range updatesQueueSize + 3 {
		a.Post(func() {})
	}

	finished := make(chan struct{})
	go func() {
		a.finish()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("posts still waiting after the loop stopped")
	}
	assert.Len(t, a.updates, updatesQueueSize)

	a.Post(func() {})
	a.QueueUpdate(func() { t.Error("update ran after the loop stopped") })
	assert.Len(t, a.updates, updatesQueueSize)
}
