// Package registry talks to the plugin registry: a Parse-style cloud
// function API that stores plugin metadata and release tarballs. It also
// resolves version specs ("latest", "1.2.3", "^1.2") against the versions
// a plugin publishes.
package registry
