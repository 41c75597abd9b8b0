// Package artifact contains the core domain types for jar selection.
//
// It defines how a configured base name maps to a jar file, the BuildListing
// returned by a release channel and the LatestStrategy that decides which
// build counts as the newest one.
package artifact
