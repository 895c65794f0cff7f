// Package notify writes the CLI's status lines: one symbol and color per
// message type, with multi-line content indented under the first line.
package notify
