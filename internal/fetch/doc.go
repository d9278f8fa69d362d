// Package fetch moves payloads around: HTTP downloads with progress,
// sha256 verification, zip and tar.gz extraction with leading-path
// stripping, and directory packing and copying. Every file operation goes
// through an afero.Fs.
package fetch
