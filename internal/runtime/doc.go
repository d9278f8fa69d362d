// Package runtime runs external programs (npm, node, framework scripts) on
// behalf of action steps. Runner is the seam tests replace with a Recorder.
package runtime
