// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"runtime"

	"code.hybscloud.com/atomix"
)

// boundedCore is the state shared by a BoundedProducer/BoundedConsumer
// pair. Go's garbage collector is the shared-ownership mechanism that
// stands in for the Rust original's Arc<Shared<T, I>>; no refcounting is
// needed because the core simply outlives whichever endpoint is dropped
// first. Grounded in original_source/src/bounded/mod.rs::Shared.
type boundedCore[T any, I boundedIndexer] struct {
	ring        *Ring[T, I]
	notProducer Notifier
	notConsumer Notifier
	closed      atomix.Bool
}

// BoundedProducer is the sending half of a bounded channel. Construct one
// with BoundedPowerOfTwo or BoundedExact; the zero value is not usable.
type BoundedProducer[T any, I boundedIndexer] struct {
	core *boundedCore[T, I]
	wake chan struct{}
}

// BoundedConsumer is the receiving half of a bounded channel.
type BoundedConsumer[T any, I boundedIndexer] struct {
	core *boundedCore[T, I]
	wake chan struct{}
}

// ProducerP2 and ConsumerP2 are the endpoint types BoundedPowerOfTwo
// returns: the ring's backing array size is always a power of two.
type (
	ProducerP2[T any] = *BoundedProducer[T, powerOfTwoIndexer]
	ConsumerP2[T any] = *BoundedConsumer[T, powerOfTwoIndexer]
)

// ProducerExact and ConsumerExact are the endpoint types BoundedExact
// returns: the ring's backing array size is exactly what was requested
// (plus the one reserved slot).
type (
	ProducerExact[T any] = *BoundedProducer[T, exactIndexer]
	ConsumerExact[T any] = *BoundedConsumer[T, exactIndexer]
)

// BoundedPowerOfTwo creates a bounded channel whose ring is sized to the
// next power of two at or above size+1, the fast-indexing policy. Panics
// if size < 1. Mirrors original_source/src/bounded/mod.rs::channel.
func BoundedPowerOfTwo[T any](size int) (ProducerP2[T], ConsumerP2[T]) {
	if size < 1 {
		panic("spsc: bounded capacity must be >= 1")
	}
	core := &boundedCore[T, powerOfTwoIndexer]{ring: newPowerOfTwoRing[T](size)}
	return newBoundedPair(core)
}

// BoundedExact creates a bounded channel whose ring is sized to exactly
// size+1 slots. Panics if size < 1. Mirrors
// original_source/src/bounded/mod.rs::exact_channel.
func BoundedExact[T any](size int) (ProducerExact[T], ConsumerExact[T]) {
	if size < 1 {
		panic("spsc: bounded capacity must be >= 1")
	}
	core := &boundedCore[T, exactIndexer]{ring: newExactRing[T](size)}
	return newBoundedPair(core)
}

func newBoundedPair[T any, I boundedIndexer](core *boundedCore[T, I]) (*BoundedProducer[T, I], *BoundedConsumer[T, I]) {
	p := &BoundedProducer[T, I]{core: core, wake: make(chan struct{}, 1)}
	c := &BoundedConsumer[T, I]{core: core, wake: make(chan struct{}, 1)}
	// Safety net standing in for Rust's Drop: if a caller garbage-collects
	// an endpoint without calling Close, the peer still gets woken instead
	// of hanging forever. Close itself remains the expected, immediate
	// mechanism; the finalizer only covers the neglect case.
	runtime.SetFinalizer(p, func(p *BoundedProducer[T, I]) { _ = p.Close() })
	runtime.SetFinalizer(c, func(c *BoundedConsumer[T, I]) { _ = c.Close() })
	return p, c
}

// parkSignal returns a continuation that wakes a goroutine blocked on ch
// without blocking the waker. ch must be buffered with capacity 1; the
// buffer makes repeated or spurious wakes harmless no-ops instead of stuck
// sends.
func parkSignal(ch chan struct{}) func() {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// TrySend attempts a non-blocking send. See Producer.TrySend.
func (p *BoundedProducer[T, I]) TrySend(elem T) error {
	if p.core.closed.LoadAcquire() {
		return &TrySendError[T]{Err: ErrDisconnected, Value: elem}
	}
	if !p.core.ring.TryPush(elem) {
		return &TrySendError[T]{Err: ErrFull, Value: elem}
	}
	p.core.notConsumer.Wake()
	return nil
}

// Send blocks until elem is accepted or the channel disconnects. Mirrors
// Sender::send's poll_next_pos loop: register before the second check so
// no wake that lands between the first check and registration is missed.
func (p *BoundedProducer[T, I]) Send(elem T) error {
	for {
		if p.core.closed.LoadAcquire() {
			return ErrDisconnected
		}
		if p.core.ring.TryPush(elem) {
			p.core.notConsumer.Wake()
			return nil
		}
		if spinUntilReady(func() bool { return p.core.ring.TryPush(elem) }) {
			p.core.notConsumer.Wake()
			return nil
		}
		p.core.notProducer.Register(parkSignal(p.wake))
		if p.core.closed.LoadAcquire() {
			return ErrDisconnected
		}
		if p.core.ring.TryPush(elem) {
			p.core.notConsumer.Wake()
			return nil
		}
		<-p.wake
	}
}

// Flush blocks until the ring has been fully drained by the consumer, or
// the channel disconnects. Mirrors Sender::poll_flush.
func (p *BoundedProducer[T, I]) Flush() error {
	for {
		if p.core.closed.LoadAcquire() {
			return ErrDisconnected
		}
		if p.core.ring.IsEmpty() {
			return nil
		}
		if spinUntilReady(p.core.ring.IsEmpty) {
			return nil
		}
		p.core.notProducer.Register(parkSignal(p.wake))
		p.core.notConsumer.Wake()
		if p.core.closed.LoadAcquire() {
			return ErrDisconnected
		}
		if p.core.ring.IsEmpty() {
			return nil
		}
		<-p.wake
	}
}

// Close marks the producer side gone and wakes a parked consumer. Unlike
// Sender::drop, Close is callable directly rather than running implicitly,
// and is idempotent.
func (p *BoundedProducer[T, I]) Close() error {
	if p.core.closed.LoadAcquire() {
		return nil
	}
	p.core.closed.StoreRelease(true)
	p.core.notConsumer.Wake()
	return nil
}

// IsClosed reports whether this side, or the peer, has closed.
func (p *BoundedProducer[T, I]) IsClosed() bool {
	return p.core.closed.LoadAcquire()
}

// nextMsg pops the next item if one is ready, waking the producer on
// success so it can reuse the freed slot. Mirrors Receiver::poll_next_msg.
func (c *BoundedConsumer[T, I]) nextMsg() (T, bool) {
	item, ok := c.core.ring.TryPop()
	if ok {
		c.core.notProducer.Wake()
	}
	return item, ok
}

// TryRecv attempts a non-blocking receive. See Consumer.TryRecv.
func (c *BoundedConsumer[T, I]) TryRecv() (T, error) {
	if item, ok := c.nextMsg(); ok {
		return item, nil
	}
	// Re-check closed, then pop again: a sender may have pushed and
	// closed between our first pop attempt and this check, and we must
	// not drop that item. Mirrors Receiver::try_recv.
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
// without consuming anything. Mirrors Receiver::poll_want_recv.
func (c *BoundedConsumer[T, I]) WantRecv() error {
	for {
		if c.core.closed.LoadAcquire() {
			return nil
		}
		if !c.core.ring.IsEmpty() {
			return nil
		}
		if spinUntilReady(func() bool { return !c.core.ring.IsEmpty() }) {
			return nil
		}
		c.core.notConsumer.Register(parkSignal(c.wake))
		c.core.notProducer.Wake()
		if c.core.closed.LoadAcquire() || !c.core.ring.IsEmpty() {
			return nil
		}
		<-c.wake
	}
}

// Recv blocks until an item is available or the channel disconnects with
// nothing left to drain. Mirrors Receiver::poll_recv.
func (c *BoundedConsumer[T, I]) Recv() (T, error) {
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

// Close marks the consumer side gone, refusing further sends; it does not
// stop the consumer itself from draining anything already queued before
// Close was called. Unlike Receiver::close, this also wakes a parked
// producer — the original leaves a producer blocked on a full ring with no
// path to observe the receiver's close, which this package treats as a bug
// rather than a behavior worth reproducing.
func (c *BoundedConsumer[T, I]) Close() error {
	if c.core.closed.LoadAcquire() {
		return nil
	}
	c.core.closed.StoreRelease(true)
	c.core.notProducer.Wake()
	return nil
}

// IsClosed reports whether this side, or the peer, has closed.
func (c *BoundedConsumer[T, I]) IsClosed() bool {
	return c.core.closed.LoadAcquire()
}

// Cap reports the ring's usable capacity. See Ring.Cap.
func (p *BoundedProducer[T, I]) Cap() int {
	return p.core.ring.Cap()
}

// Cap reports the ring's usable capacity. See Ring.Cap.
func (c *BoundedConsumer[T, I]) Cap() int {
	return c.core.ring.Cap()
}
