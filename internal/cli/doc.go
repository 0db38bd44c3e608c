// Package cli implements the metalwatch command-line interface: a one-shot
// run command, a daemon mode, and commands for inspecting the preference
// profile and configured sources.
package cli
