// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

// Stream adapts a Consumer[T] to a pull-style iterator, translating Rust's
// futures_util::Stream (poll_next returning Option<Item>) into a blocking
// Next call. Grounded in original_source/src/bounded/mod.rs and
// src/unbounded/mod.rs's `impl Stream for Receiver/UnboundedReceiver`.
type Stream[T any] interface {
	// Next blocks until an item is available or the channel disconnects
	// with nothing left to drain, in which case ok is false. Equivalent
	// to a successful poll_next returning None.
	Next() (item T, ok bool)

	// Close closes the underlying consumer.
	Close() error
}

type stream[T any] struct {
	inner Consumer[T]
}

// NewStream wraps c as a Stream[T].
func NewStream[T any](c Consumer[T]) Stream[T] {
	return &stream[T]{inner: c}
}

func (s *stream[T]) Next() (T, bool) {
	item, err := s.inner.Recv()
	if err != nil {
		var zero T
		return zero, false
	}
	return item, true
}

func (s *stream[T]) Close() error {
	return s.inner.Close()
}
