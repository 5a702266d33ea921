// Package commands is the asynchronous command core of sigil.
//
// Every stateful service (wallet store, crypto provider) is touched from
// exactly one worker goroutine owned by the Executor. Producers hand typed
// commands to Send and return immediately; the worker dequeues them in strict
// FIFO order, routes each to its domain executor, and invokes the command's
// completion callback in-line. A slow callback therefore stalls the whole
// dispatcher.
//
// Shutdown enqueues the Exit sentinel: commands enqueued before it are
// drained to completion, commands sent after it fail fast with
// domain.ErrExecutorClosed.
package commands
