// Package source talks to the APOD web server.
//
// A Client fetches archive pages as streams for the scraper and image files
// as streams for the store. Neither is buffered in full. Failures are
// reported as *FetchError, which matches ErrFetch with errors.Is.
//
// The base address is fixed; the Client accepts another one only so that
// tests can point it at an httptest server.
package source
