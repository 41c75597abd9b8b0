// Package settings implements the configuration store.
//
// The FileRepository loads and persists the launcher Config on disk and
// exposes a Repository interface that the updater and the run orchestration
// depend on.
package settings
