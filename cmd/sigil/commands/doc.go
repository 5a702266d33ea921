// Package commands implements the sigil CLI.
//
// Every subcommand talks to the service layer exclusively through the command
// executor: it enqueues a command with a completion callback and waits on a
// result channel. The executor is built once per invocation and shut down
// (drained and joined) before the process exits.
package commands
