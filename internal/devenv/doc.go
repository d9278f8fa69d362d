// Package devenv runs the apps of a multi-app project (API, admin, app)
// side by side for local development. project:start launches each app on
// a free port and records the processes in a state file that
// project:status and project:stop read back.
package devenv
