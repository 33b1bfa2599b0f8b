// Package log builds the diagnostic [log/slog] handlers used next to the
// process logger.
//
// Process log lines are the product; diagnostics are everything about the
// logger itself: dropped entries for unregistered processes, sink write
// failures, registrations at debug level. They go through a regular
// [slog.Logger] in one of three formats ([FormatText], backed by
// [charm.land/log/v2], plus [FormatJSON] and [FormatLogfmt]) filtered by
// [Level].
//
// Typical usage creates a [Config], registers flags, then builds a logger at
// startup:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	diag, err := cfg.NewLogger(os.Stderr)
//
// A [Publisher] fans out written entries to subscribers, which is how the
// watch TUI receives formatted process lines without touching the terminal
// directly:
//
//	pub := log.NewPublisher(log.WithHistory(100))
//	logger, err := consoleCfg.NewLogger(pub)
//
//	sub := pub.Subscribe()
//	go func() {
//		for entry := range sub.C() {
//			// Deliver entry to the TUI.
//		}
//	}()
package log
