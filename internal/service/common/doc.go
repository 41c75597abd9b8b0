// Package common holds helpers shared by several services, currently the
// platform specific executable naming.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
