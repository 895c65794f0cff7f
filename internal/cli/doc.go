// Package cli defines the Cobra command tree for the mcm CLI. Each file in
// this package builds one top-level command (register, install, list, etc.).
// Command implementations delegate to internal packages for business logic
// and only handle flag parsing, I/O formatting, and user interaction.
package cli
