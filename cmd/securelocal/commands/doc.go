// Package commands defines the securelocal CLI and wires dependencies for subcommands.
//
// Commands
//
//   - get       Print a section, or selected keys of it
//   - set       Merge key=value pairs into a section
//   - remove    Delete keys from a section
//   - clear     Delete every section (requires --yes)
//   - sections  List the sections that exist
//
// # Implementation
//
// Configuration comes from SECURELOCAL_* environment variables, overridden by
// flags. Each command builds a fresh app.Wire, runs one store operation and
// releases the backend, so nothing is cached between invocations.
package commands
