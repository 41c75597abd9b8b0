// Package resolver chooses the jar to launch, either from the release channel
// when auto update is enabled or from the local directory otherwise.
package resolver
