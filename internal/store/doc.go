// Package store writes downloaded pictures to disk.
//
// Each picture is stored as <dir>/apod-YYYY-MM-DD<ext>, named after the
// archive date it was fetched for. Fetching the same date again overwrites
// the earlier file, so a directory never holds two copies of one day.
//
// The store works on an afero.Fs. Production code uses the OS filesystem;
// tests use an in-memory one.
package store
