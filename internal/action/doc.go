// Package action implements the action-sequence engine every command runs on.
//
// A Map is an ordered set of named steps. Maps are assembled from reusable
// fragments with Merge and Remove, then executed with Run against a single
// shared Options value. Steps run strictly one at a time in insertion order,
// and the first failing step ends the sequence with its own error.
package action
