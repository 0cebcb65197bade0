// Package archive knows the shape of the APOD archive: which calendar dates
// have a page, what each page is called, and how to pick one at random.
//
// The archive starts on 1995-06-16 and has one page per day since, except
// for a three day hole (1995-06-17 through 1995-06-19) that was never
// published. Page names use a two-digit year, so the mapping from Date to
// PageName is only unambiguous within a single century.
//
// # Usage
//
//	name := archive.PageName(archive.DaysAgo(time.Now(), 3))
//
//	s := archive.NewSampler()
//	d := s.Candidate()
//
// All computation happens in UTC so that a run near midnight does not drift
// onto a different page depending on the machine's local zone.
package archive
