// Package userdata manages the per-user home directory (~/.arcli): the user
// config overrides, rotated logs, user-level command manifests and scratch
// space for downloads.
package userdata
