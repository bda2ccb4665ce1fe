// internal/kbc/wake.go
package kbc

// setupWakeKeys programs the per-row wake masks.
//
// filter=true masks every row (all columns ignored) and then unmasks
// exactly the configured wake positions, so only those keys can raise
// the keypress interrupt while suspended. filter=false restores the
// full scan. Idempotent for a given wake set.
func setupWakeKeys(regs RegisterInterface, wake []WakeKey, filter bool) {
	var rst uint32
	if filter && len(wake) > 0 {
		rst = ^uint32(0)
	}

	for row := uint32(0); row < MaxRows; row++ {
		regs.Write(RegRowMask0+row*4, rst)
	}

	if !filter {
		return
	}

	for _, w := range wake {
		addr := RegRowMask0 + uint32(w.Row)*4
		val := regs.Read(addr)
		val &^= 1 << w.Col
		regs.Write(addr, val)
	}
}
