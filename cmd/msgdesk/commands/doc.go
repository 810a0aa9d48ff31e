// Package commands wires configuration, logging, the submission log and the
// gateway client into the msgdesk cobra commands.
package commands
