package core

// DMAChannel identifies one chip DMA channel. Targets define their
// channel constants; ownership is tracked by the DMA channel ledger.
type DMAChannel uint8
