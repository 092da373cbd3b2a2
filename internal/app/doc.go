// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment, builds the storage root for the
// configured backend, a logger and the section store, and exposes them via
// the Wire struct for commands to use.
package app
