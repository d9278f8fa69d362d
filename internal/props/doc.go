// Package props builds the process-wide context every command and action
// step receives: working directory, layered configuration, and the shared
// prompt, spinner, logger, template, filesystem, HTTP and process handles.
//
// Props is built once in main and passed by pointer; nothing in arcli looks
// these collaborators up through package-level state.
package props
