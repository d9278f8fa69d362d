// Package command defines the contract every arcli command satisfies and
// the registry that collects commands from several sources.
//
// Sources are loaded in order. When two sources provide a command with the
// same name the later one replaces the earlier, so project commands can
// override framework commands, which can override builtins.
package command
