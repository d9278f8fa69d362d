// Package manifest parses and validates YAML command manifests.
//
// A command manifest (command.yaml) declares a CLI command entirely in
// data: its flags, the prompts that fill missing parameters, and an ordered
// list of steps that run as an action sequence. Plugins ship the same step
// format in arcli-install.yaml for post-install work. Both are validated
// against an embedded JSON Schema before use.
package manifest
