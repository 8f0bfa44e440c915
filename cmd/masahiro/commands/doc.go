// Package commands defines the masahiro CLI and wires dependencies for subcommands.
//
// Commands
//
//   - key show         Print the public key to give the next new contact
//   - key rotate       Replace that key with a fresh one
//   - contact add      Save a contact and bind the shown key to it
//   - contact list     List contacts
//   - contact remove   Delete contacts and their keys
//   - contact key      Print the public key a contact knows you by
//   - encrypt          Seal a message for a contact
//   - decrypt          Open a message, searching all contacts by default
//
// # Implementation
//
// The root command resolves Config (defaults, config.yaml, environment, then
// flags), builds the logger and the dependency graph before any subcommand
// runs, and stores it in a shared app context.
package commands
