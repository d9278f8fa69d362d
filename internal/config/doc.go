// Package config resolves arcli configuration.
//
// The effective configuration is a shallow overlay of four JSON layers:
// embedded defaults, the framework core (.core/.cli/config.json), the user
// home (~/.arcli/config.json) and the project (.cli/config.json). Settings
// wraps viper for the `config get|set` commands on the home file.
package config
