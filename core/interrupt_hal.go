package core

// IRQ identifies an interrupt line on the chip's controller.
type IRQ uint32

// InterruptController is the chip interrupt surface the framework
// consumes. Per-line enable and priority are mandatory; the rest are
// optional capabilities probed per call.
type InterruptController interface {
	SetEnabled(irq IRQ, enable bool)
	SetPriority(irq IRQ, priority uint8)
}

// InterruptGlobalControl exposes the global interrupt enable on
// controllers that can report and set it directly.
type InterruptGlobalControl interface {
	AreGloballyEnabled() bool
	SetGloballyEnabled(enable bool)
}

// InterruptPender exposes software-triggered pending state.
type InterruptPender interface {
	SetPending(irq IRQ)
	IsPending(irq IRQ) bool
}

// InterruptWaiter suspends the CPU until an interrupt fires.
type InterruptWaiter interface {
	WaitForInterrupt()
}

var interruptDriver InterruptController

// SetInterruptDriver registers the chip interrupt controller.
func SetInterruptDriver(d InterruptController) {
	interruptDriver = d
}

// MustInterrupts returns the registered interrupt controller and fails
// fatally when the chip layer has not provided one.
func MustInterrupts() InterruptController {
	if interruptDriver == nil {
		Fatal("interrupts: no driver registered")
	}
	return interruptDriver
}

// WaitForInterrupt suspends until the next interrupt when the controller
// supports it, and returns at once otherwise.
func WaitForInterrupt() {
	if w, ok := interruptDriver.(InterruptWaiter); ok {
		w.WaitForInterrupt()
	}
}
