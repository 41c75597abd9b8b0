// Package updater keeps the configured server jar on the newest build of a
// release channel.
//
// It fetches the channel build listing, compares its latest build with the
// installed one recorded in the configuration, downloads the newer jar,
// atomically replaces the local file and only then records the new build.
package updater
