// Package treeview renders the process forest of a [process.Database] as
// text trees, one per main process, in registration order:
//
//	API (API_1)
//	├── Worker (Worker_1)
//	│   └── Job (Job_1)
//	└── Cache (Cache_1)
//
// Labels can be colored with each process's assigned color so the tree
// matches the log output.
package treeview
