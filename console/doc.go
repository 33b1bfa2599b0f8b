// Package console is the process-aware console logger.
//
// A [Logger] ties together the process database, the color assigner, the
// registration service and the formatter behind a small API: register
// processes, then log values against the returned IDs.
//
//	cfg := console.NewConfig()
//	cfg.Mode = "docker"
//	cfg.ShowHierarchy = true
//
//	logger, err := cfg.NewLogger(os.Stdout)
//	if err != nil {
//		// Handle error.
//	}
//
//	api, err := logger.RegisterMain("API")
//	if err != nil {
//		// Handle error.
//	}
//
//	worker, err := logger.RegisterSub("Worker", api)
//	if err != nil {
//		// Handle error.
//	}
//
//	logger.Info(worker, "started", map[string]int{"jobs": 3})
//
// Registration problems are returned to the caller. Problems at log time,
// such as an unregistered ID or a failing sink, cannot be returned; they are
// reported to a diagnostics [slog.Logger] (see [WithDiagnostics]) and the
// entry is dropped.
//
// [Config] follows the usual flag pattern: [Config.RegisterFlags] and
// [Config.RegisterCompletions] wire it into a cobra command, and
// [Config.LoadFile] merges a YAML file whose shape is described by [Schema].
// Explicitly set flags win over the file.
package console
