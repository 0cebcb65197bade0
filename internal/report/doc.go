// Package report prints the outcome of a run.
//
//   - SimpleWriter: aligned status lines for the terminal
//   - JSONWriter: the run record as JSON, wrapped with the program version
//
// Both take a *model.Run after the pipeline has finished with it, so a run
// that stopped early is printed with whatever it had recorded.
package report
