// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

// Builder creates channels with fluent configuration, mirroring the
// constructor-vs-builder duality the sibling lfq package offers: direct
// constructors (BoundedPowerOfTwo, BoundedExact, NewUnbounded) for the common
// case, and Builder for call sites that pick the ring strategy dynamically.
//
// Example:
//
//	p, c := spsc.New[Event](1024).Exact().Bounded()
//	p, c := spsc.New[Event](1).Unbounded()
type Builder[T any] struct {
	capacity int
	exact    bool
}

// New creates a channel builder with the given requested bounded capacity.
// The capacity is ignored by Unbounded. Panics if capacity < 1.
func New[T any](capacity int) *Builder[T] {
	if capacity < 1 {
		panic("spsc: capacity must be >= 1")
	}
	return &Builder[T]{capacity: capacity}
}

// Exact selects the exact-capacity indexer (§4.2): the observable slot
// count is precisely max(capacity+1, 2) - 1 instead of rounding up to the
// next power of two.
func (b *Builder[T]) Exact() *Builder[T] {
	b.exact = true
	return b
}

// Bounded builds a bounded channel using the configured indexer strategy,
// returning the endpoints as the Producer[T]/Consumer[T] interfaces since
// the concrete type differs (ProducerP2/ProducerExact) depending on Exact.
// Call BoundedPowerOfTwo/BoundedExact directly for a concretely typed
// result.
func (b *Builder[T]) Bounded() (Producer[T], Consumer[T]) {
	if b.exact {
		p, c := BoundedExact[T](b.capacity)
		return p, c
	}
	p, c := BoundedPowerOfTwo[T](b.capacity)
	return p, c
}

// Unbounded builds an unbounded channel, ignoring any configured capacity.
func (b *Builder[T]) Unbounded() (*UnboundedProducer[T], *UnboundedConsumer[T]) {
	return NewUnbounded[T]()
}

// roundToPow2 rounds n up to the next power of 2. Mirrors lfq's own
// roundToPow2; kept local so this package has no compile-time dependency on
// lfq's internal helpers.
func roundToPow2(n uint64) uint64 {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing between hot fields
// that different goroutines touch (one side's position counter must not
// share a cache line with the other side's).
type pad [64]byte

// padShort pads a structure out to a cache line after an 8-byte field.
type padShort [64 - 8]byte
