// Package scanner finds the jar to launch in a local directory by matching a
// configured substring against file names.
package scanner
