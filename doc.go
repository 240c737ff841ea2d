// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spsc provides single-producer single-consumer channels for
// cooperative task schedulers: a bounded flavor backed by a lock-free ring
// buffer, and an unbounded flavor backed by a lock-free growing list of
// fixed-size blocks.
//
// Unlike the sibling package [code.hybscloud.com/lfq], which exposes raw
// non-blocking Enqueue/Dequeue and leaves backoff to the caller, spsc
// channels have two sides with distinct vocabulary — a Producer that
// TrySends/Sends/Flushes/Closes, and a Consumer that TryRecvs/Recvs/
// WantRecvs/Closes — and blocking operations that park the calling
// goroutine after a short bounded spin instead of spinning indefinitely.
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	p, c := spsc.BoundedPowerOfTwo[Event](1024)
//	p, c := spsc.BoundedExact[Event](1000) // exactly 1000 usable slots
//	p, c := spsc.NewUnbounded[Event]()
//
// Builder API for call sites that decide the ring strategy dynamically:
//
//	p, c := spsc.New[Event](1024).Bounded()         // power-of-two ring
//	p, c := spsc.New[Event](1024).Exact().Bounded() // exact-capacity ring
//	p, c := spsc.New[Event](1).Unbounded()
//
// # Basic Usage
//
// Bounded and unbounded endpoints share the same Producer[T]/Consumer[T]
// shape:
//
//	p, c := spsc.BoundedPowerOfTwo[int](1024)
//
//	// Non-blocking send
//	if err := p.TrySend(42); spsc.IsWouldBlock(err) {
//	    // ring full, try again later
//	}
//
//	// Non-blocking receive
//	v, err := c.TryRecv()
//	if spsc.IsWouldBlock(err) {
//	    // nothing available yet
//	}
//
//	// Blocking send/receive
//	_ = p.Send(43)
//	v, err = c.Recv() // err is ErrDisconnected once either side has closed and nothing is left
//
// # Common Patterns
//
// Pipeline stage, non-blocking with backoff (mirrors [code.hybscloud.com/lfq]'s
// own pipeline pattern, adapted to two-sided vocabulary):
//
//	p, c := spsc.BoundedPowerOfTwo[Data](1024)
//
//	go func() { // Stage 1
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for p.TrySend(data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	    p.Close()
//	}()
//
//	go func() { // Stage 2
//	    for {
//	        data, err := c.Recv()
//	        if err != nil {
//	            return // producer closed and drained
//	        }
//	        process(data)
//	    }
//	}()
//
// Pipeline stage, blocking (lets the runtime park the goroutine instead of
// spinning):
//
//	p, c := spsc.NewUnbounded[Data]()
//
//	go func() {
//	    for data := range input {
//	        _ = p.Send(data)
//	    }
//	    p.Close()
//	}()
//
//	go func() {
//	    for {
//	        data, err := c.Recv()
//	        if err != nil {
//	            return
//	        }
//	        process(data)
//	    }
//	}()
//
// Readiness multiplexing with WantRecv, for a consumer juggling more than
// one event source:
//
//	for {
//	    _ = c.WantRecv() // returns nil once an item is ready or the channel is closed
//	    v, err := c.TryRecv()
//	    if spsc.IsDisconnected(err) {
//	        return // disconnected with nothing left
//	    }
//	    if err == nil {
//	        handle(v)
//	    }
//	}
//
// # Channel Variants
//
// Two ring-capacity policies are available for the bounded flavor:
//
//	BoundedPowerOfTwo[T](n) - indexes with a bitmask AND; rounds the
//	                          backing array up to the next power of two
//	BoundedExact[T](n)      - indexes with a remainder; backing array is
//	                          exactly n+1 slots, no rounding
//
// Both report Cap() usable slots equal to the backing array size minus one;
// the reserved slot disambiguates full from empty without a separate
// counter. The unbounded flavor has no Cap(): it grows a block at a time
// and never rejects a send.
//
// # Error Handling
//
// TrySend/TryRecv return [ErrFull]/[ErrEmpty] — both aliases of
// [code.hybscloud.com/iox]'s [iox.ErrWouldBlock] for ecosystem consistency —
// when they cannot proceed without blocking. [ErrDisconnected] is distinct
// and terminal: once the peer is gone and nothing is left to drain, it
// replaces the transient signal for good.
//
//	err := p.TrySend(item)
//	switch {
//	case err == nil:
//	    // sent
//	case spsc.IsWouldBlock(err):
//	    // ring full, retry later
//	case spsc.IsDisconnected(err):
//	    // consumer gone, stop producing
//	}
//
// For semantic error classification (delegates to iox):
//
//	spsc.IsWouldBlock(err)  // true if ErrFull or ErrEmpty
//	spsc.IsSemantic(err)    // true if control flow signal
//	spsc.IsNonFailure(err)  // true if nil, ErrFull, or ErrEmpty
//
// TrySend additionally hands back the rejected item via [TrySendError], for
// callers that want to retry without re-deriving it:
//
//	if err := p.TrySend(item); err != nil {
//	    var tse *spsc.TrySendError[Data]
//	    if errors.As(err, &tse) {
//	        retry(tse.Value)
//	    }
//	}
//
// # Capacity and Length
//
// BoundedPowerOfTwo rounds max(n+1, 2) up to the next power of two, then
// reports one less than that as Cap():
//
//	p, _ := spsc.BoundedPowerOfTwo[int](3)    // backing array 4, Cap() == 3
//	p, _ = spsc.BoundedPowerOfTwo[int](1000)  // backing array 1024, Cap() == 1023
//
// BoundedExact uses exactly max(n+1, 2) slots, so Cap() == n for n >= 1:
//
//	p, _ = spsc.BoundedExact[int](1000) // Cap() == 1000
//
// Length is intentionally not exposed: an accurate count would require
// cross-core synchronization neither side's hot path otherwise needs.
//
// # Thread Safety
//
// Exactly one goroutine may call Producer methods at a time, and exactly
// one goroutine may call Consumer methods at a time — concurrent calls
// from two producer goroutines, or two consumer goroutines, on the same
// endpoint are undefined behavior, same as [code.hybscloud.com/lfq]'s SPSC
// queue. The producer and consumer sides may run on different goroutines
// concurrently with each other; that is the entire point.
//
// # Graceful Shutdown
//
// Close is idempotent on both sides and always wakes the peer. Closing the
// producer means no further items will arrive, but whatever is already in
// the ring or block queue is still delivered to Recv/TryRecv until it runs
// dry, at which point they return [ErrDisconnected]. Closing the consumer
// means it will no longer accept the guarantee of further delivery — Send
// and Flush on the peer start returning ErrDisconnected — but an
// already-registered Recv loop may still observe buffered items before
// stopping on its own terms, since Close does not evict what is already
// in flight.
//
// If an endpoint is garbage collected without an explicit Close, a
// runtime.SetFinalizer safety net closes it anyway so the peer is not left
// parked forever — a Go substitute for the destructor-triggered close the
// original implementation gets from Rust's ownership model. Relying on the
// finalizer is not recommended; call Close explicitly.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// It tracks explicit synchronization primitives (mutex, channel, WaitGroup)
// but cannot observe happens-before relationships established purely
// through atomic acquire-release orderings on separate variables, which is
// exactly how the Ring, block queue, and Notifier all synchronize. Tests
// that would trigger false positives under -race are excluded via
// [RaceEnabled] and a //go:build race / !race split, matching
// [code.hybscloud.com/lfq]'s own convention.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for the busy-poll segment before
// a goroutine registers a continuation and parks.
package spsc
