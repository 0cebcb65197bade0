// Package model defines the data shared by the pipeline, the reports and the
// command line.
//
//   - Mode: which archive entry a run targets (today, random, yesterday or
//     N days ago), parsed from the optional positional argument
//   - Run: the record of one invocation, filled in step by step and printed
//     at the end
//
// Keeping these types apart from the pipeline lets the report package render
// a Run without importing the steps that produce it.
package model
