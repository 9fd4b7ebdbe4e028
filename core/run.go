package core

// App is the application handed to Run. Init and Main run once, in the
// foreground, after the chip layer has registered its drivers. Panic,
// LogWriter and LogLevel are optional hook overrides.
type App struct {
	// Init performs application setup after core services are up.
	Init func() error
	// Main is the application body. Returning nil parks the CPU;
	// returning an error is fatal.
	Main func() error
	// Panic replaces the default fatal hook.
	Panic PanicHook
	// LogWriter receives framework log lines.
	LogWriter LogWriter
	// LogLevel filters framework log lines.
	LogLevel LogLevel
}

// Run is the program-entry trampoline. The chip layer registers its
// drivers first, then hands control here. Run never returns.
func Run(app App) {
	if app.LogWriter != nil {
		SetLogWriter(app.LogWriter)
		SetLogLevel(app.LogLevel)
	}
	if app.Panic != nil {
		SetPanicHook(app.Panic)
	}

	// A chip layer that forgot to register its clock or port driver is
	// unusable. Fail here, before application code runs.
	MustClock()
	MustPorts()

	if app.Init != nil {
		if err := app.Init(); err != nil {
			Fatal("init: " + err.Error())
		}
	}
	if app.Main != nil {
		if err := app.Main(); err != nil {
			Fatal("main: " + err.Error())
		}
	}
	park()
}
