// Package registry registers processes into a [process.Database].
//
// [Service.Register] is the single entry point: it de-duplicates the service
// name against every registered name, asks the [palette.Assigner] for a color
// (passing the parent's metadata for sub-processes), inserts the node, and
// returns the generated [process.ID]. Callers use that ID, not the display
// name, for every later log call.
//
//	svc := registry.New(process.NewDatabase(), palette.New(style.Docker))
//
//	api, err := svc.RegisterMain("API")
//	if err != nil {
//		// Handle error.
//	}
//
//	worker, err := svc.RegisterSub("Worker", api)
//	if err != nil {
//		// Handle error.
//	}
package registry
