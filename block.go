// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// blockSize is the number of slots per block in an unbounded channel's
// backing linked list. Grounded in
// original_source/src/unbounded/queue.rs's BLOCK_SIZE.
const blockSize = 128

const blockMask = blockSize - 1

// block is one fixed-size segment of an unbounded channel's slot list.
// Linking is producer-owned: only the producer ever stores into next, and
// it does so exactly once, when the block fills, before any consumer can
// observe the block as full. atomic.Pointer gives the consumer's crossing
// read the acquire pairing it needs against that store; there is no
// equivalent typed pointer atomic in code.hybscloud.com/atomix, so this is
// the one place the package reaches past it to sync/atomic.
type block[T any] struct {
	slots [blockSize]T
	next  atomic.Pointer[block[T]]
}

func newBlock[T any]() *block[T] {
	return new(block[T])
}

// blockQueue is a lock-free single-producer single-consumer queue backed by
// a growing linked list of fixed-size blocks: it never rejects a push.
// Grounded in original_source/src/unbounded/queue.rs::Queue.
type blockQueue[T any] struct {
	_           pad
	producer    *block[T]
	producerPos atomix.Uint64
	_           pad
	consumer    *block[T]
	consumerPos atomix.Uint64
	_           pad
}

func newBlockQueue[T any]() *blockQueue[T] {
	b := newBlock[T]()
	return &blockQueue[T]{producer: b, consumer: b}
}

// IsEmpty reports whether the queue currently holds no items.
func (q *blockQueue[T]) IsEmpty() bool {
	return q.producerPos.LoadAcquire() == q.consumerPos.LoadAcquire()
}

// Push appends t. Producer-only; never blocks and never fails, allocating a
// fresh block when the current one fills.
func (q *blockQueue[T]) Push(t T) {
	now := q.producerPos.LoadAcquire()
	nowIdx := now & blockMask
	next := now + 1

	q.producer.slots[nowIdx] = t

	if next&blockMask < nowIdx {
		nextBlock := newBlock[T]()
		q.producer.next.Store(nextBlock)
		q.producer = nextBlock
	}

	q.producerPos.StoreRelease(next)
}

// TryPop removes and returns the oldest item. Consumer-only. Returns
// (zero, false) if the queue is empty.
func (q *blockQueue[T]) TryPop() (T, bool) {
	if q.IsEmpty() {
		var zero T
		return zero, false
	}

	now := q.consumerPos.LoadAcquire()
	nowIdx := now & blockMask
	next := now + 1

	ret := q.consumer.slots[nowIdx]
	var zero T
	q.consumer.slots[nowIdx] = zero

	if next&blockMask < nowIdx {
		q.consumer = q.consumer.next.Load()
	}

	q.consumerPos.StoreRelease(next)
	return ret, true
}
