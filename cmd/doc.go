// Package cmd implements the command-line interface for the Lynx
// key-value store client. It provides a hierarchical command structure
// for administering stores and owners and for working with records.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for record operations (insert, get, delete, subscribe, etc.)
//   - store: Commands for store administration (create, remove, structures)
//   - owner: Commands for owner and permission management
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See lynx -help for a list of all commands.
package cmd
