// Package plugin holds the action sequences behind the plugin commands:
// installing registry plugins into a Reactium or Actinium project,
// authenticating with the registry, and publishing a plugin.
//
// Each sequence is a fragment that commands combine: publish runs the auth
// fragment followed by its own steps, and unattended install runs the
// install fragment once per plugin listed in package.json.
package plugin
