// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

// Producer is the sending half of a channel, bounded or unbounded.
//
// Every concrete producer type (ProducerP2, ProducerExact,
// *UnboundedProducer) satisfies Producer[T] structurally, so code that only
// needs to send can be written against the interface and stay agnostic to
// which ring strategy, or whether a ring at all, backs the channel.
type Producer[T any] interface {
	// TrySend attempts to hand elem to the channel without blocking.
	// Returns ErrFull if a bounded ring has no free slot, or ErrDisconnected
	// if the consumer is gone.
	TrySend(elem T) error

	// Send blocks the calling goroutine until elem is accepted or the
	// channel disconnects. Returns ErrDisconnected in the latter case.
	Send(elem T) error

	// Flush blocks until every previously sent item has been observed as
	// available to the consumer, or the channel disconnects. On an
	// unbounded channel this degenerates to a non-blocking emptiness check,
	// since an unbounded push is always immediately visible.
	Flush() error

	// Close marks the producer side gone and wakes a parked consumer.
	// Close is idempotent.
	Close() error

	// IsClosed reports whether this side, or the peer, has closed.
	IsClosed() bool
}

// Consumer is the receiving half of a channel, bounded or unbounded.
type Consumer[T any] interface {
	// TryRecv attempts to take an item without blocking. Returns ErrEmpty
	// if none is available, or ErrDisconnected if the channel is empty and
	// the producer is gone for good.
	TryRecv() (T, error)

	// Recv blocks the calling goroutine until an item is available or the
	// channel disconnects with nothing left to drain.
	Recv() (T, error)

	// WantRecv blocks until an item becomes available or the channel is
	// closed, without consuming anything — a pure readiness wait, useful for
	// multiplexing against other event sources before committing to a Recv.
	// It returns nil in both cases; TryRecv tells them apart.
	WantRecv() error

	// Close marks the consumer side gone, refusing further sends. It does
	// not stop the consumer from draining items already in the ring or
	// queue. Close is idempotent.
	Close() error

	// IsClosed reports whether this side, or the peer, has closed.
	IsClosed() bool
}
