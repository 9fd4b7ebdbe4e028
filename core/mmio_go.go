//go:build !tinygo

package core

// Plain loads and stores on regular Go (for testing against
// memory-backed cells).

func loadReg[T RegValue](p *T) T { return *p }

func storeReg[T RegValue](p *T, v T) { *p = v }
