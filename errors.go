// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrFull indicates a bounded producer has no free slot right now.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency: it is
// a transient, non-failure control-flow signal, not an error to propagate.
// Only TrySend returns it; the call site already disambiguates it from
// ErrEmpty.
var ErrFull = iox.ErrWouldBlock

// ErrEmpty indicates a consumer has no item available right now.
//
// Also an alias for [iox.ErrWouldBlock]; only TryRecv returns it.
var ErrEmpty = iox.ErrWouldBlock

// ErrDisconnected indicates the peer endpoint is gone, or the channel was
// explicitly closed. Unlike ErrFull/ErrEmpty, this is terminal: once
// observed on one side it remains true for the life of the channel.
var ErrDisconnected = errors.New("spsc: channel disconnected")

// IsWouldBlock reports whether err is the transient would-block signal
// (ErrFull or ErrEmpty). Delegates to [iox.IsWouldBlock].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control-flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition:
// nil or ErrFull/ErrEmpty. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsDisconnected reports whether err is (or wraps) ErrDisconnected.
func IsDisconnected(err error) bool {
	return errors.Is(err, ErrDisconnected)
}

// TrySendError carries back the value that a non-blocking send could not
// deliver, alongside the reason, so the caller can retry without having
// re-derived the item. The rejected value is also still the caller's own
// local copy (Go passes by value), so TrySendError is a convenience
// pairing rather than a hand-back of ownership the way its Rust analogue
// is.
type TrySendError[T any] struct {
	Err   error
	Value T
}

func (e *TrySendError[T]) Error() string {
	return fmt.Sprintf("spsc: send rejected: %v", e.Err)
}

func (e *TrySendError[T]) Unwrap() error {
	return e.Err
}

// IsFull reports whether a TrySendError's underlying reason is ErrFull.
func (e *TrySendError[T]) IsFull() bool {
	return errors.Is(e.Err, ErrFull)
}

// IsDisconnected reports whether a TrySendError's underlying reason is
// ErrDisconnected.
func (e *TrySendError[T]) IsDisconnected() bool {
	return errors.Is(e.Err, ErrDisconnected)
}
