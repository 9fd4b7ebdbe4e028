package core

// PanicHook receives the message of a fatal invariant violation before
// the framework halts.
type PanicHook func(msg string)

var panicHook PanicHook

// SetPanicHook installs a user panic handler. It runs before the
// framework panics and may itself never return.
func SetPanicHook(h PanicHook) {
	panicHook = h
}

// Fatal reports an unrecoverable programmer error: double reservation of
// a pad, release by a non-owner, a missing chip driver. It never returns.
func Fatal(msg string) {
	LogError(msg)
	if panicHook != nil {
		panicHook(msg)
	}
	panic(msg)
}

// park halts forever once the application has finished.
func park() {
	for {
	}
}
