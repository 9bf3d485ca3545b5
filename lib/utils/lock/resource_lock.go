package lock

import (
	"context"
	"sync"
	"sync/atomic"
)

// Resource serializes access to the external AI model across the process.
var Resource = newResourceLock()

func InitResourceLock(ctx context.Context) {
	Resource = newResourceLock()

	go func() {
		<-ctx.Done()
		Resource.Stop()
	}()
}

type ResourceLock struct {
	slot      chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
	mu        sync.Mutex
	holder    string
	waitCount int32
}

func newResourceLock() *ResourceLock {
	return &ResourceLock{
		slot:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
}

// Acquire blocks until the resource is free. false means the context ended or the lock was stopped.
func (c *ResourceLock) Acquire(ctx context.Context, functionName string) bool {
	atomic.AddInt32(&c.waitCount, 1)
	defer atomic.AddInt32(&c.waitCount, -1)

	select {
	case <-c.stopCh:
		return false
	default:
	}
	select {
	case c.slot <- struct{}{}:
		c.mu.Lock()
		c.holder = functionName
		c.mu.Unlock()
		return true
	case <-ctx.Done():
		return false
	case <-c.stopCh:
		return false
	}
}

// Release frees the resource if functionName holds it.
func (c *ResourceLock) Release(functionName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.holder != functionName {
		return
	}
	c.holder = ""
	<-c.slot
}

// Stop wakes every waiter; later Acquire calls fail.
func (c *ResourceLock) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *ResourceLock) Holder() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holder
}

func (c *ResourceLock) WaitCount() int {
	return int(atomic.LoadInt32(&c.waitCount))
}
