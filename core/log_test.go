package core

import "testing"

// captureLog redirects the log sink into a slice for one test.
func captureLog(t *testing.T) *[]string {
	t.Helper()
	prevWriter, prevLevel := logWriter, logLevel
	t.Cleanup(func() {
		logWriter = prevWriter
		logLevel = prevLevel
	})
	var lines []string
	SetLogWriter(func(s string) { lines = append(lines, s) })
	return &lines
}

func TestLogLevelsAndPrefixes(t *testing.T) {
	lines := captureLog(t)
	SetLogLevel(LevelDebug)

	LogDebug("d")
	LogInfo("i")
	LogWarn("w")
	LogError("e")

	want := []string{"debug: d", "info: i", "warn: w", "error: e"}
	if len(*lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(*lines), len(want), *lines)
	}
	for i, w := range want {
		if (*lines)[i] != w {
			t.Errorf("line %d = %q, want %q", i, (*lines)[i], w)
		}
	}
}

func TestLogLevelFilters(t *testing.T) {
	lines := captureLog(t)
	SetLogLevel(LevelWarn)

	LogDebug("d")
	LogInfo("i")
	LogWarn("w")

	if len(*lines) != 1 || (*lines)[0] != "warn: w" {
		t.Errorf("filtered log = %v, want only the warning", *lines)
	}
}

func TestSetLogWriterNil(t *testing.T) {
	prevWriter := logWriter
	defer func() { logWriter = prevWriter }()

	SetLogWriter(nil)
	// Must not crash.
	LogError("dropped")
}

func TestFatalReportsBeforePanic(t *testing.T) {
	lines := captureLog(t)
	SetLogLevel(LevelError)

	prevHook := panicHook
	defer func() { panicHook = prevHook }()
	var hooked string
	SetPanicHook(func(msg string) { hooked = msg })

	msg := expectFatal(t, func() { Fatal("broken invariant") })
	if msg != "broken invariant" {
		t.Errorf("panic value = %q", msg)
	}
	if hooked != "broken invariant" {
		t.Errorf("panic hook got %q", hooked)
	}
	if len(*lines) != 1 || (*lines)[0] != "error: broken invariant" {
		t.Errorf("log = %v, want the error line", *lines)
	}
}
