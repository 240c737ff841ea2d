// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc_test

import (
	"testing"

	"code.hybscloud.com/spsc"
)

func TestBuilderBoundedPowerOfTwo(t *testing.T) {
	p, c := spsc.New[int](2).Bounded()
	if err := p.Send(1); err != nil {
		t.Fatalf("Send(1): %v", err)
	}
	v, err := c.Recv()
	if err != nil || v != 1 {
		t.Fatalf("Recv() = (%d, %v), want (1, nil)", v, err)
	}
}

func TestBuilderBoundedExact(t *testing.T) {
	p, c := spsc.New[int](1000).Exact().Bounded()

	count := 0
	for p.TrySend(count) == nil {
		count++
	}
	if count != 1000 {
		t.Fatalf("exact capacity filled %d slots, want 1000", count)
	}
	for i := 0; i < count; i++ {
		if _, err := c.TryRecv(); err != nil {
			t.Fatalf("TryRecv() at i=%d: %v", i, err)
		}
	}
}

func TestBuilderUnbounded(t *testing.T) {
	p, c := spsc.New[int](1).Unbounded()
	for i := 0; i < 500; i++ {
		if err := p.TrySend(i); err != nil {
			t.Fatalf("TrySend(%d): %v", i, err)
		}
	}
	for i := 0; i < 500; i++ {
		v, err := c.TryRecv()
		if err != nil || v != i {
			t.Fatalf("TryRecv() = (%d, %v), want (%d, nil)", v, err, i)
		}
	}
}
