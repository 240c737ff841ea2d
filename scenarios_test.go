// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spsc"
)

// S1: bounded power-of-two channel, requested size 2 (-> capacity 3 slots),
// producer sends 0..10000 in order, consumer recvs until disconnected.
func TestScenarioS1(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: producer/consumer hand off across goroutines through Ring's atomic-ordering-only synchronization, which -race cannot interpret")
	}
	p, c := spsc.BoundedPowerOfTwo[int](2)
	if p.Cap() != 3 {
		t.Fatalf("Cap() = %d, want 3", p.Cap())
	}

	go func() {
		for i := 0; i < 10000; i++ {
			_ = p.Send(i)
		}
		_ = p.Close()
	}()

	for i := 0; i < 10000; i++ {
		v, err := c.Recv()
		if err != nil {
			t.Fatalf("Recv() at i=%d: %v", i, err)
		}
		if v != i {
			t.Fatalf("Recv() = %d, want %d", v, i)
		}
	}
	if _, err := c.Recv(); !errors.Is(err, spsc.ErrDisconnected) {
		t.Fatalf("final Recv() = %v, want ErrDisconnected", err)
	}
}

// S2: same as S1 but the consumer uses a TryRecv+WantRecv batch loop.
func TestScenarioS2(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: producer/consumer hand off across goroutines through Ring's atomic-ordering-only synchronization, which -race cannot interpret")
	}
	p, c := spsc.BoundedPowerOfTwo[int](2)

	go func() {
		for i := 0; i < 10000; i++ {
			_ = p.Send(i)
		}
		_ = p.Close()
	}()

	got := make([]int, 0, 10000)
	for {
		v, err := c.TryRecv()
		if err == nil {
			got = append(got, v)
			continue
		}
		if errors.Is(err, spsc.ErrDisconnected) {
			break
		}
		if err := c.WantRecv(); err != nil {
			t.Fatalf("WantRecv: %v", err)
		}
	}

	if len(got) != 10000 {
		t.Fatalf("received %d items, want 10000", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d = %d, want %d", i, v, i)
		}
	}
}

// S3: bounded power-of-two channel, requested size 100, producer batches
// with TrySend, calls Flush on Full, then closes. Consumer Recv-loops.
func TestScenarioS3(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: producer/consumer hand off across goroutines through Ring's atomic-ordering-only synchronization, which -race cannot interpret")
	}
	p, c := spsc.BoundedPowerOfTwo[int](100)

	go func() {
		i := 0
		for i < 10000 {
			if err := p.TrySend(i); err != nil {
				if err := p.Flush(); err != nil {
					return
				}
				continue
			}
			i++
		}
		_ = p.Flush()
		_ = p.Close()
	}()

	for i := 0; i < 10000; i++ {
		v, err := c.Recv()
		if err != nil {
			t.Fatalf("Recv() at i=%d: %v", i, err)
		}
		if v != i {
			t.Fatalf("Recv() = %d, want %d", v, i)
		}
	}
	if _, err := c.Recv(); !errors.Is(err, spsc.ErrDisconnected) {
		t.Fatalf("final Recv() = %v, want ErrDisconnected", err)
	}
}

// S4: bounded channel capacity 1, producer sends 0 then 1 then closes;
// consumer recvs twice then once more.
func TestScenarioS4(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: producer/consumer hand off across goroutines through Ring's atomic-ordering-only synchronization, which -race cannot interpret")
	}
	p, c := spsc.BoundedExact[int](1)

	go func() {
		_ = p.Send(0)
		_ = p.Send(1)
		_ = p.Close()
	}()

	v, err := c.Recv()
	if err != nil || v != 0 {
		t.Fatalf("Recv() #1 = (%d, %v), want (0, nil)", v, err)
	}
	v, err = c.Recv()
	if err != nil || v != 1 {
		t.Fatalf("Recv() #2 = (%d, %v), want (1, nil)", v, err)
	}
	if _, err := c.Recv(); !errors.Is(err, spsc.ErrDisconnected) {
		t.Fatalf("Recv() #3 = %v, want ErrDisconnected", err)
	}
}

// S5: bounded channel, producer does TrySend(x) then immediately closes
// without flushing; consumer Recvs and must still observe x.
func TestScenarioS5(t *testing.T) {
	p, c := spsc.BoundedPowerOfTwo[int](8)

	const x = 42
	if err := p.TrySend(x); err != nil {
		t.Fatalf("TrySend(%d): %v", x, err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	v, err := c.Recv()
	if err != nil || v != x {
		t.Fatalf("Recv() = (%d, %v), want (%d, nil)", v, err, x)
	}
	if _, err := c.Recv(); !errors.Is(err, spsc.ErrDisconnected) {
		t.Fatalf("final Recv() = %v, want ErrDisconnected", err)
	}
}

// S6: unbounded channel, producer sends 0..100 synchronously, closes;
// consumer TryRecv-loops.
func TestScenarioS6(t *testing.T) {
	p, c := spsc.NewUnbounded[int]()

	for i := 0; i < 100; i++ {
		if err := p.Send(i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for i := 0; i < 100; i++ {
		v, err := c.TryRecv()
		if err != nil {
			t.Fatalf("TryRecv() at i=%d: %v", i, err)
		}
		if v != i {
			t.Fatalf("TryRecv() = %d, want %d", v, i)
		}
	}
	if _, err := c.TryRecv(); !errors.Is(err, spsc.ErrDisconnected) {
		t.Fatalf("final TryRecv() = %v, want ErrDisconnected", err)
	}
}

// S7: unbounded channel, producer sends 0..N where N > blockSize (128),
// closes; consumer drains. Verifies block linking and freeing across
// multiple block boundaries.
func TestScenarioS7(t *testing.T) {
	p, c := spsc.NewUnbounded[int]()
	const n = 128*5 + 37

	for i := 0; i < n; i++ {
		if err := p.Send(i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	backoff := iox.Backoff{}
	for i := 0; i < n; i++ {
		v, err := c.TryRecv()
		for spsc.IsWouldBlock(err) {
			backoff.Wait()
			v, err = c.TryRecv()
		}
		backoff.Reset()
		if err != nil {
			t.Fatalf("TryRecv() at i=%d: %v", i, err)
		}
		if v != i {
			t.Fatalf("TryRecv() = %d, want %d", v, i)
		}
	}
	if _, err := c.TryRecv(); !errors.Is(err, spsc.ErrDisconnected) {
		t.Fatalf("final TryRecv() = %v, want ErrDisconnected", err)
	}
}
