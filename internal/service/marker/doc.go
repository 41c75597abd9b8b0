// Package marker guards a server directory with a PID file so that only one
// launcher updates the jar and the configuration at a time.
package marker
