package registry

import (
	"errors"
	"strconv"
)

// ErrNotFound is returned when the registry has no such plugin or version.
var ErrNotFound = errors.New("not found")

// Error is an error answer from the registry server.
type Error struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "registry request failed with status " + strconv.Itoa(e.Status)
	}
	return e.Message
}

// File is a stored file reference.
type File struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Version is one published release of a plugin.
type Version struct {
	Version     string            `json:"version"`
	Description string            `json:"description,omitempty"`
	Checksum    string            `json:"checksum,omitempty"`
	File        File              `json:"file"`
	Reactium    string            `json:"reactium,omitempty"`
	Actinium    string            `json:"actinium,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// Plugin is a registry entry with every published version keyed by
// version string.
type Plugin struct {
	ObjectID    string             `json:"objectId,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Versions    map[string]Version `json:"version"`
}

// User is an authenticated registry account.
type User struct {
	ObjectID     string `json:"objectId"`
	Username     string `json:"username"`
	SessionToken string `json:"sessionToken,omitempty"`
}

// PublishRequest describes a new plugin version.
type PublishRequest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Checksum    string `json:"checksum"`
	File        File   `json:"file"`
	Private     bool   `json:"private,omitempty"`
}
