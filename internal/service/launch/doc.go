// Package launch wires the configuration store, the jar resolver and the
// process launcher into a single run, the entry point of the CLI.
package launch
