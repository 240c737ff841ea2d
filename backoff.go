// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "code.hybscloud.com/spin"

// spinAttempts bounds the busy-poll segment every blocking operation runs
// before it registers a continuation and parks. Short enough that a
// producer/consumer pair racing to hand off a single item rarely pays for
// a channel round trip at all; bounded so a genuinely idle peer doesn't
// burn a core.
const spinAttempts = 32

// spinUntilReady busy-polls ready, backing off with spin.Wait between
// checks, up to spinAttempts times. Returns true if ready reported success
// during the spin, sparing the caller a Register+park round trip for the
// common case where the peer catches up within a few spins. Mirrors the
// spin.Wait{}/.Once() retry loops in mpsc_seq.go, generalized from a CAS
// retry to an arbitrary readiness check.
func spinUntilReady(ready func() bool) bool {
	sw := spin.Wait{}
	for i := 0; i < spinAttempts; i++ {
		if ready() {
			return true
		}
		sw.Once()
	}
	return false
}
