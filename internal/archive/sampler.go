package archive

import (
	"math/rand/v2"
	"time"
)

// First is the date of the first archive page.
var First = Date{Year: 1995, Month: time.June, Day: 16}

// The archive publishes on US East Coast time. A page for "today" is only
// assumed to exist once the publication cutoff has passed, which keeps the
// upper bound roughly six hours behind the wall clock.
const (
	cutoffHour   = 18
	cutoffMinute = 59
	cutoffSecond = 59
	cutoffNanos  = 999 * int(time.Millisecond)
	cutoffLag    = 5 * time.Hour
)

// Range is an inclusive span of instants.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within r, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether the inclusive span [start, end] shares any
// instant with r.
func (r Range) Overlaps(start, end time.Time) bool {
	return !end.Before(r.Start) && !start.After(r.End)
}

// Gaps lists the spans of the archive that were never published.
var Gaps = []Range{
	{
		Start: time.Date(1995, time.June, 17, 0, 0, 0, 0, time.UTC),
		End:   time.Date(1995, time.June, 19, 23, 59, 59, 999*int(time.Millisecond), time.UTC),
	},
}

// LatestInstant returns the upper bound for archive dates as of now:
// today's publication cutoff in UTC, shifted back by the cutoff lag.
func LatestInstant(now time.Time) time.Time {
	d := DateOf(now)
	cutoff := time.Date(d.Year, d.Month, d.Day, cutoffHour, cutoffMinute, cutoffSecond, cutoffNanos, time.UTC)
	return cutoff.Add(-cutoffLag)
}

// Sampler draws random archive dates by rejection sampling: an instant is
// drawn uniformly between the first page and LatestInstant, and redrawn
// while it falls inside an excluded range.
type Sampler struct {
	// rng is the uniform source. Nil means the math/rand/v2 global source.
	rng *rand.Rand

	// now returns the current time; overridden in tests.
	now func() time.Time

	// excluded holds the ranges that must never be returned.
	excluded []Range
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithRand sets the random source. Use a seeded source for reproducible draws.
func WithRand(rng *rand.Rand) SamplerOption {
	return func(s *Sampler) {
		s.rng = rng
	}
}

// WithSeed seeds a PCG source with seed. A zero seed leaves the default
// unseeded source in place.
func WithSeed(seed uint64) SamplerOption {
	return func(s *Sampler) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) SamplerOption {
	return func(s *Sampler) {
		s.now = now
	}
}

// WithExcluded replaces the excluded ranges. The default is Gaps.
func WithExcluded(ranges ...Range) SamplerOption {
	return func(s *Sampler) {
		s.excluded = ranges
	}
}

// NewSampler creates a Sampler over the archive.
func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{
		now:      time.Now,
		excluded: Gaps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bounds returns the inclusive instant range the sampler draws from.
func (s *Sampler) Bounds() Range {
	return Range{Start: First.Time(), End: LatestInstant(s.now())}
}

// Candidate returns a random archive date.
//
// There is no cap on redraws. The excluded span is a few days out of
// decades, so the expected number of draws is barely above one.
func (s *Sampler) Candidate() Date {
	return DateOf(s.instant(s.Bounds()))
}

// instant draws until it finds an instant outside every excluded range.
func (s *Sampler) instant(bounds Range) time.Time {
	span := bounds.End.Sub(bounds.Start)
	if span < 0 {
		return bounds.Start
	}
	for {
		t := bounds.Start.Add(time.Duration(s.int64N(int64(span) + 1)))
		if !s.isExcluded(t) {
			return t
		}
	}
}

func (s *Sampler) isExcluded(t time.Time) bool {
	for _, r := range s.excluded {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

func (s *Sampler) int64N(n int64) int64 {
	if s.rng != nil {
		return s.rng.Int64N(n)
	}
	return rand.Int64N(n)
}
