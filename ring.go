// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "code.hybscloud.com/atomix"

// boundedIndexer maps a monotonically increasing position to a slot within
// a fixed-size backing array, and reports that array's size. It generalizes
// lfq.SPSC[T]'s hardwired `pos & mask` into a strategy, matching
// original_source/src/bounded/ring.rs's Indexer trait (And / Remainder).
type boundedIndexer interface {
	index(pos uint64) uint64
	capacity() uint64
}

// powerOfTwoIndexer indexes with a bitmask AND, the fast path: the backing
// array size is always a power of two. Mirrors ring.rs's And.
type powerOfTwoIndexer struct {
	mask uint64
	cap  uint64
}

func (i powerOfTwoIndexer) index(pos uint64) uint64 { return pos & i.mask }
func (i powerOfTwoIndexer) capacity() uint64        { return i.cap }

// exactIndexer indexes with a remainder, trading the AND's speed for a
// backing array sized to exactly what the caller asked for. Mirrors
// ring.rs's Remainder.
type exactIndexer struct {
	cap uint64
}

func (i exactIndexer) index(pos uint64) uint64 { return pos % i.cap }
func (i exactIndexer) capacity() uint64        { return i.cap }

// Ring is a lock-free single-producer single-consumer circular buffer,
// generalizing lfq.SPSC[T] with a pluggable index strategy so the same
// producer/consumer-position algorithm serves both the power-of-two and
// exact capacity policies.
//
// One slot is always reserved to disambiguate full from empty without a
// separate counter, so a Ring built for n requested slots holds cap-1
// usable items where cap is the indexer's capacity().
type Ring[T any, I boundedIndexer] struct {
	_             pad
	producerPos   atomix.Uint64
	_             pad
	cachedConsPos uint64
	_             pad
	consumerPos   atomix.Uint64
	_             pad
	cachedProdPos uint64
	_             pad
	buf           []T
	indexer       I
}

func newRing[T any, I boundedIndexer](indexer I) *Ring[T, I] {
	return &Ring[T, I]{
		buf:     make([]T, indexer.capacity()),
		indexer: indexer,
	}
}

// newPowerOfTwoRing builds a Ring whose backing array size is the next
// power of two at or above max(requested+1, 2), matching
// ring.rs::Ring<T, And>::with_capacity.
func newPowerOfTwoRing[T any](requested int) *Ring[T, powerOfTwoIndexer] {
	cap := roundToPow2(uint64(max(requested+1, 2)))
	return newRing[T, powerOfTwoIndexer](powerOfTwoIndexer{mask: cap - 1, cap: cap})
}

// newExactRing builds a Ring whose backing array size is exactly
// max(requested+1, 2), matching ring.rs::Ring<T, Remainder>::with_capacity.
func newExactRing[T any](requested int) *Ring[T, exactIndexer] {
	cap := uint64(max(requested+1, 2))
	return newRing[T, exactIndexer](exactIndexer{cap: cap})
}

// Cap reports the usable capacity: the number of items the ring can hold
// at once, one less than the backing array size.
func (r *Ring[T, I]) Cap() int {
	return int(r.indexer.capacity() - 1)
}

// IsEmpty reports whether the ring currently holds no items. Safe to call
// from either side; read-only.
func (r *Ring[T, I]) IsEmpty() bool {
	return r.consumerPos.LoadAcquire() == r.producerPos.LoadAcquire()
}

// IsFull reports whether the ring currently holds Cap() items.
func (r *Ring[T, I]) IsFull() bool {
	diff := r.producerPos.LoadAcquire() - r.consumerPos.LoadAcquire()
	return r.indexer.index(diff) == r.indexer.capacity()-1
}

// TryPush writes elem into the next slot and publishes it to the consumer.
// Producer-only; must not be called concurrently with another TryPush.
// Returns false if the ring is full.
func (r *Ring[T, I]) TryPush(elem T) bool {
	pos := r.producerPos.LoadRelaxed()
	if r.indexer.index(pos-r.cachedConsPos) == r.indexer.capacity()-1 {
		r.cachedConsPos = r.consumerPos.LoadAcquire()
		if r.indexer.index(pos-r.cachedConsPos) == r.indexer.capacity()-1 {
			return false
		}
	}
	r.buf[r.indexer.index(pos)] = elem
	r.producerPos.StoreRelease(pos + 1)
	return true
}

// TryPop reads and clears the oldest slot. Consumer-only; must not be
// called concurrently with another TryPop. Returns (zero, false) if the
// ring is empty.
func (r *Ring[T, I]) TryPop() (T, bool) {
	pos := r.consumerPos.LoadRelaxed()
	if pos == r.cachedProdPos {
		r.cachedProdPos = r.producerPos.LoadAcquire()
		if pos == r.cachedProdPos {
			var zero T
			return zero, false
		}
	}
	idx := r.indexer.index(pos)
	elem := r.buf[idx]
	var zero T
	r.buf[idx] = zero
	r.consumerPos.StoreRelease(pos + 1)
	return elem, true
}
