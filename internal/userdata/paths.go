package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomic-reactor/arcli/internal/branding"
)

// Directory and file names inside the home directory.
const (
	ConfigFile  = "config.json"
	LogsDir     = "logs"
	CommandsDir = "commands"
	TmpDir      = "tmp"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// Root returns the arcli home directory. It checks the ARCLI_HOME
// environment variable first, then falls back to ~/.arcli.
func Root() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// ConfigPath returns <root>/config.json.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// LogsPath returns <root>/logs.
func LogsPath(root string) string {
	return filepath.Join(root, LogsDir)
}

// LogFile returns the rotating log path, <root>/logs/arcli.log.
func LogFile(root string) string {
	return filepath.Join(root, LogsDir, branding.CLIName()+".log")
}

// CommandsPath returns the directory holding user-level command manifests.
func CommandsPath(root string) string {
	return filepath.Join(root, CommandsDir)
}

// TmpPath returns a scratch directory for downloads under root.
func TmpPath(root string, parts ...string) string {
	return filepath.Join(append([]string{root, TmpDir}, parts...)...)
}
