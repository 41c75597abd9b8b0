// Package integration holds end-to-end tests that run the launcher against a
// local build API and a stand-in java executable.
package integration
