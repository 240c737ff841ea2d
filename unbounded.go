// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"runtime"

	"code.hybscloud.com/atomix"
)

// unboundedCore is the state shared by an UnboundedProducer/UnboundedConsumer
// pair. There is only one Notifier, on the consumer side: an unbounded push
// never blocks, so the producer has nothing to register a continuation
// against. Grounded in original_source/src/unbounded/mod.rs::Shared.
type unboundedCore[T any] struct {
	queue       *blockQueue[T]
	notConsumer Notifier
	closed      atomix.Bool
}

// UnboundedProducer is the sending half of an unbounded channel. Send never
// blocks: the backing blockQueue grows without limit.
type UnboundedProducer[T any] struct {
	core *unboundedCore[T]
}

// UnboundedConsumer is the receiving half of an unbounded channel.
type UnboundedConsumer[T any] struct {
	core *unboundedCore[T]
	wake chan struct{}
}

// NewUnbounded creates an unbounded channel. Mirrors
// original_source/src/unbounded/mod.rs::unbounded_channel.
func NewUnbounded[T any]() (*UnboundedProducer[T], *UnboundedConsumer[T]) {
	core := &unboundedCore[T]{queue: newBlockQueue[T]()}
	p := &UnboundedProducer[T]{core: core}
	c := &UnboundedConsumer[T]{core: core, wake: make(chan struct{}, 1)}
	runtime.SetFinalizer(p, func(p *UnboundedProducer[T]) { _ = p.Close() })
	runtime.SetFinalizer(c, func(c *UnboundedConsumer[T]) { _ = c.Close() })
	return p, c
}

// TrySend pushes elem and returns immediately. The only failure mode is a
// closed channel — there is no "full" outcome for an unbounded producer.
// Mirrors UnboundedSender::start_send.
func (p *UnboundedProducer[T]) TrySend(elem T) error {
	if p.core.closed.LoadAcquire() {
		return &TrySendError[T]{Err: ErrDisconnected, Value: elem}
	}
	p.core.queue.Push(elem)
	return nil
}

// Send pushes elem and wakes a parked consumer. Despite the blocking name
// carried over from Producer[T] for interface parity with BoundedProducer,
// this never actually parks: an unbounded push always succeeds immediately.
// Mirrors UnboundedSender::send.
func (p *UnboundedProducer[T]) Send(elem T) error {
	if p.core.closed.LoadAcquire() {
		return ErrDisconnected
	}
	p.core.queue.Push(elem)
	p.core.notConsumer.Wake()
	return nil
}

// Flush wakes a parked consumer if the queue is non-empty, or returns
// immediately without touching the Notifier if it is already empty — the
// same elided-wake optimization as UnboundedSender::flush. Like Send, this
// never blocks.
func (p *UnboundedProducer[T]) Flush() error {
	if p.core.closed.LoadAcquire() {
		return ErrDisconnected
	}
	if p.core.queue.IsEmpty() {
		return nil
	}
	p.core.notConsumer.Wake()
	return nil
}

// Close marks the producer side gone and wakes a parked consumer.
func (p *UnboundedProducer[T]) Close() error {
	if p.core.closed.LoadAcquire() {
		return nil
	}
	p.core.closed.StoreRelease(true)
	p.core.notConsumer.Wake()
	return nil
}

// IsClosed reports whether this side, or the peer, has closed.
func (p *UnboundedProducer[T]) IsClosed() bool {
	return p.core.closed.LoadAcquire()
}

// nextMsg pops the next item if one is ready. Mirrors the private
// try_pop helper shared by UnboundedReceiver's methods.
func (c *UnboundedConsumer[T]) nextMsg() (T, bool) {
	return c.core.queue.TryPop()
}

// TryRecv attempts a non-blocking receive. See Consumer.TryRecv.
func (c *UnboundedConsumer[T]) TryRecv() (T, error) {
	if item, ok := c.nextMsg(); ok {
		return item, nil
	}
	if c.core.closed.LoadAcquire() {
		if item, ok := c.nextMsg(); ok {
			return item, nil
		}
		var zero T
		return zero, ErrDisconnected
	}
	var zero T
	return zero, ErrEmpty
}

// WantRecv blocks until an item is available or the channel disconnects,
// without consuming anything. Mirrors UnboundedReceiver::poll_want_recv.
func (c *UnboundedConsumer[T]) WantRecv() error {
	for {
		if c.core.closed.LoadAcquire() {
			return nil
		}
		if !c.core.queue.IsEmpty() {
			return nil
		}
		if spinUntilReady(func() bool { return !c.core.queue.IsEmpty() }) {
			return nil
		}
		c.core.notConsumer.Register(parkSignal(c.wake))
		if c.core.closed.LoadAcquire() || !c.core.queue.IsEmpty() {
			return nil
		}
		<-c.wake
	}
}

// Recv blocks until an item is available or the channel disconnects with
// nothing left to drain. Mirrors UnboundedReceiver::poll_recv.
func (c *UnboundedConsumer[T]) Recv() (T, error) {
	for {
		if item, ok := c.nextMsg(); ok {
			return item, nil
		}
		var spun T
		var spunOK bool
		if spinUntilReady(func() bool { spun, spunOK = c.nextMsg(); return spunOK }) {
			return spun, nil
		}
		c.core.notConsumer.Register(parkSignal(c.wake))
		if item, ok := c.nextMsg(); ok {
			return item, nil
		}
		if c.core.closed.LoadAcquire() {
			if item, ok := c.nextMsg(); ok {
				return item, nil
			}
			var zero T
			return zero, ErrDisconnected
		}
		<-c.wake
	}
}

// Close marks the consumer side gone. Draining already-queued items is
// unaffected; see the equivalent note on BoundedConsumer.Close.
func (c *UnboundedConsumer[T]) Close() error {
	if c.core.closed.LoadAcquire() {
		return nil
	}
	c.core.closed.StoreRelease(true)
	return nil
}

// IsClosed reports whether this side, or the peer, has closed.
func (c *UnboundedConsumer[T]) IsClosed() bool {
	return c.core.closed.LoadAcquire()
}
