// Package project inspects and edits the Reactium or Actinium project in
// the working directory: which framework it is, its package.json, free
// ports for local servers, and the state file of a running dev environment.
package project
