// Package task defines the Task domain value.
package task

import "strings"

// Default is used when the agent is invoked without a task argument.
const Default Task = "Build a Hello World app"

// Task is the natural-language instruction sent to the generation service.
// It also names the file the generated code is written to.
type Task string

// Resolve returns the first invocation argument, or Default when there is none.
// An explicitly empty argument is kept as-is.
func Resolve(args []string) Task {
	if len(args) > 0 {
		return Task(args[0])
	}
	return Default
}

var filenameReplacer = strings.NewReplacer(" ", "_", "'", "")

// Filename derives the output file name: lower-cased, spaces replaced with
// underscores, apostrophes removed, ext appended.
func (t Task) Filename(ext string) string {
	return filenameReplacer.Replace(strings.ToLower(string(t))) + ext
}

// String returns the task text.
func (t Task) String() string { return string(t) }
