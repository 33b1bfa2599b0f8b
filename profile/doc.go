// Package profile records runtime profiles around a logging workload.
//
// The proclog bench command uses it to capture where time goes when many
// goroutines log through one [console.Logger]: CPU for formatting and style
// resolution, mutex and block profiles for contention on the sink and the
// registry, and heap for per-entry allocations.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//
//	s, err := cfg.Start()
//	if err != nil {
//	    return err
//	}
//	defer s.Stop()
//
// [console.Logger]: go.jacobcolvin.com/proclog/console.Logger
package profile
