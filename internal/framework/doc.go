// Package framework installs and updates the Reactium and Actinium
// frameworks from their release archives.
package framework
