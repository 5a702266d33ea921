// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment and builds a running command Executor
// (storage backend, logger, worker) from it.
package app
