// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/spsc"
)

func TestTrySendErrorCarriesRejectedValueOnFull(t *testing.T) {
	p, _ := spsc.BoundedExact[int](1)
	if err := p.TrySend(1); err != nil {
		t.Fatalf("TrySend(1): %v", err)
	}

	err := p.TrySend(2)
	var tse *spsc.TrySendError[int]
	if !errors.As(err, &tse) {
		t.Fatalf("TrySend on full ring: got %T, want *TrySendError[int]", err)
	}
	if tse.Value != 2 {
		t.Fatalf("TrySendError.Value = %d, want 2", tse.Value)
	}
	if !tse.IsFull() {
		t.Fatal("TrySendError.IsFull() = false, want true")
	}
	if !spsc.IsWouldBlock(err) {
		t.Fatal("IsWouldBlock(err) = false, want true")
	}
}

func TestTrySendErrorCarriesRejectedValueOnDisconnect(t *testing.T) {
	p, _ := spsc.NewUnbounded[int]()
	_ = p.Close()

	err := p.TrySend(9)
	var tse *spsc.TrySendError[int]
	if !errors.As(err, &tse) {
		t.Fatalf("TrySend after Close: got %T, want *TrySendError[int]", err)
	}
	if tse.Value != 9 {
		t.Fatalf("TrySendError.Value = %d, want 9", tse.Value)
	}
	if !tse.IsDisconnected() {
		t.Fatal("TrySendError.IsDisconnected() = false, want true")
	}
	if !errors.Is(err, spsc.ErrDisconnected) {
		t.Fatal("errors.Is(err, ErrDisconnected) = false, want true")
	}
}
