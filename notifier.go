// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "code.hybscloud.com/atomix"

// Notifier coordinates exactly one parking party against one notifying
// party without serializing concurrent parks. There is at most one
// registrant and at most one waker by construction; only the register/wake
// cross-flows race with each other.
//
// Notifier stores a single continuation — a func() that, when invoked,
// resumes whatever parked on it. The zero value is ready to use: idle,
// with no stored continuation.
type Notifier struct {
	_     pad
	state atomix.Uint32
	cont  func()
	_     padShort
}

const (
	notifierIdle        uint32 = 0
	notifierWaking       = 1 << 0
	notifierRegistering  = 1 << 1
	notifierFull         = notifierWaking | notifierRegistering
)

// fetchOrUint32 atomically ORs bits into a and returns the prior value.
func fetchOrUint32(a *atomix.Uint32, bits uint32) uint32 {
	for {
		old := a.LoadAcquire()
		if a.CompareAndSwapAcqRel(old, old|bits) {
			return old
		}
	}
}

// fetchAndUint32 atomically ANDs bits into a and returns the prior value.
func fetchAndUint32(a *atomix.Uint32, bits uint32) uint32 {
	for {
		old := a.LoadAcquire()
		if a.CompareAndSwapAcqRel(old, old&bits) {
			return old
		}
	}
}

// Register installs continuation as the notifier's stored continuation and
// guarantees that a Wake already in flight, or one that begins at any time
// before the next Register, invokes a continuation that resumes the
// awaiting party.
//
// Register must not be called concurrently with another Register on the
// same Notifier (single-registrant assumption); it may race freely with
// Wake.
func (n *Notifier) Register(continuation func()) {
	switch fetchOrUint32(&n.state, notifierRegistering) {
	case notifierWaking:
		// A wake is already in flight: the stored continuation slot is not
		// ours to touch, so invoke the new one directly and release the bit.
		continuation()
		fetchAndUint32(&n.state, ^uint32(notifierRegistering))
	default:
		// IDLE: we exclusively own the continuation slot.
		n.cont = continuation
		if fetchAndUint32(&n.state, ^uint32(notifierRegistering)) == notifierFull {
			// A wake raced in while we were writing; it deferred to us.
			// Clear via CAS (not a plain store) so the transition back to
			// IDLE is itself an acquire-release RMW: the next Wake's
			// acquire load is guaranteed to observe this cleared state
			// rather than a reordered, stale WAKING bit.
			cont := n.cont
			n.cont = nil
			cont()
			for {
				old := n.state.LoadAcquire()
				if n.state.CompareAndSwapAcqRel(old, notifierIdle) {
					break
				}
			}
		}
	}
}

// Wake arranges for the stored continuation, if any, to be invoked exactly
// once. A Wake that races with a concurrent Register may hand the
// invocation off to the registrant; the net effect is that the newly
// registered continuation runs.
//
// Wake may be called from any goroutine, including one different from the
// one that registered the continuation, and may be called repeatedly
// without an intervening Register — repeated wakes are harmless no-ops
// once the first has fired or a registrant has taken over.
func (n *Notifier) Wake() {
	if fetchOrUint32(&n.state, notifierWaking) == notifierIdle {
		// We exclusively own the continuation slot: no concurrent
		// Register can be mutating it while WAKING is held.
		if cont := n.cont; cont != nil {
			n.cont = nil
			cont()
		}
		fetchAndUint32(&n.state, ^uint32(notifierWaking))
	}
	// Otherwise a concurrent registrant already holds or will hold the
	// slot and its post-clear logic observes WAKING on our behalf.
}
