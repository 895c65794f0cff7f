// Package installer runs the external package manager (Composer by default)
// that resolves and installs the aggregated dependency set. The Installer
// interface is what the registry drives; Exec is the process-backed
// implementation used by the CLI.
package installer
