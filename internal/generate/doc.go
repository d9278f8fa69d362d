// Package generate scaffolds source files from embedded templates. It
// powers the "component" and "commander" commands.
package generate
