// Package app wires application dependencies for the CLI.
//
// It loads Config from defaults, the home directory's config.yaml and the
// environment, builds the logger, and assembles the concrete stores and
// services into a Wire for commands to use.
package app
