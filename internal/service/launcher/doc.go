// Package launcher runs the selected jar with java and waits for it to exit.
//
// It resolves the java executable from the configured path, builds the JVM
// arguments from the heap settings and optionally pauses after the server
// has stopped so the console stays readable.
package launcher
