// Package cli builds the arcli command tree. Builtin commands are command
// modules like any manifest command; each handler resolves its params from
// flags and prompts and hands them to a generator in an internal package.
package cli
