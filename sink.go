// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

// Sink adapts a Producer[T] to the push-with-backpressure shape used by
// pipeline-style code that does not want to think about Full/Empty at
// every call site — it blocks instead of returning a transient error.
// Grounded in original_source/src/bounded/wrapper.rs::SenderWrapper and
// src/unbounded/wrapper.rs::UnboundedSenderWrapper, translating Rust's
// poll-based futures_sink::Sink trait into blocking calls since Go has no
// equivalent of Context/Waker-driven polling.
type Sink[T any] interface {
	// Ready reports whether the channel will currently accept a send,
	// without blocking: only the closed state is checked, since Send
	// itself already blocks out any ring-full backpressure. Grounded in
	// UnboundedSenderWrapper::poll_ready, which makes the same
	// closed-only check; BoundedProducer additionally blocks inside Send
	// itself, so Sink does not need to duplicate its fullness check here.
	Ready() error

	// Send delivers elem, blocking as needed. Equivalent to calling Ready
	// then the producer's own Send.
	Send(elem T) error

	// Flush waits for previously sent items to be observed by the
	// consumer. See Producer.Flush.
	Flush() error

	// Close closes the underlying producer and detaches it: further calls
	// to Ready, Send and Flush return ErrDisconnected without touching the
	// producer again, and a further Close returns nil, mirroring
	// poll_close's `self.inner = None`.
	Close() error
}

type sink[T any] struct {
	inner Producer[T]
}

// NewSink wraps p as a Sink[T].
func NewSink[T any](p Producer[T]) Sink[T] {
	return &sink[T]{inner: p}
}

func (s *sink[T]) Ready() error {
	if s.inner == nil || s.inner.IsClosed() {
		return ErrDisconnected
	}
	return nil
}

func (s *sink[T]) Send(elem T) error {
	if s.inner == nil {
		return ErrDisconnected
	}
	return s.inner.Send(elem)
}

func (s *sink[T]) Flush() error {
	if s.inner == nil {
		return ErrDisconnected
	}
	return s.inner.Flush()
}

func (s *sink[T]) Close() error {
	if s.inner == nil {
		return nil
	}
	err := s.inner.Close()
	s.inner = nil
	return err
}
