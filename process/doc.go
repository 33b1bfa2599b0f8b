// Package process models registered processes as a forest.
//
// Every registered process is a [Node] carrying [Metadata], which is either a
// [Main] (the root of its own [Tree]) or a [Sub] that names its parent by
// [ID]. A [Database] owns every tree, generates unique IDs, and tracks the
// longest service name seen so formatters can align tags.
//
// Sub-processes refer to their parent by ID only; the database resolves the
// reference through its index, so no node points back up the tree.
//
// Basic usage:
//
//	db := process.NewDatabase()
//
//	apiID, err := db.AddMainProcess(process.Main{Info: process.Info{ServiceName: "API"}})
//	if err != nil {
//		// Handle error.
//	}
//
//	workerID, err := db.AddSubProcess(apiID, process.Sub{
//		Info:     process.Info{ServiceName: "Worker"},
//		ParentID: apiID,
//	})
//	if err != nil {
//		// Handle error.
//	}
//
//	path := db.Path(workerID) // [API node, Worker node]
package process
