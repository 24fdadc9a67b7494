// Package rules holds the band and time legality checks: mode-specific
// frequency segments, the per-mode contest windows and the time-drift
// tolerance between two logs of the same contact.
package rules

import (
	"time"

	"nraucheck/internal/contest"
)

// freqRange is an inclusive kHz range.
type freqRange struct{ lo, hi int }

func (r freqRange) contains(f int) bool { return f >= r.lo && f <= r.hi }

// Contest segments per mode. Band edges (3500/7000) are tolerated as exact
// values: logging software rounds the band-edge spot frequency down.
var (
	cwRanges = []freqRange{
		{3510, 3560}, {3500, 3500},
		{7010, 7060}, {7000, 7000},
	}
	phRanges = []freqRange{
		{3600, 3650}, {3700, 3775}, {3500, 3500},
		{7050, 7100}, {7130, 7200}, {7000, 7000},
	}
)

// FrequencyLegal reports whether freqKHz falls inside one of the mode's
// contest segments.
func FrequencyLegal(mode contest.Mode, freqKHz int) bool {
	var ranges []freqRange
	switch mode {
	case contest.ModeCW:
		ranges = cwRanges
	case contest.ModePH:
		ranges = phRanges
	default:
		return false
	}
	for _, r := range ranges {
		if r.contains(freqKHz) {
			return true
		}
	}
	return false
}

// Window is one contest session: a start instant and a duration. Each mode
// has exactly one window per edition.
type Window struct {
	Start    time.Time
	Duration time.Duration
}

// Contains reports whether t falls inside the window. Both edges are
// inclusive: contacts logged exactly at the closing minute still count.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	return !t.After(w.Start.Add(w.Duration))
}

// End returns the window's closing instant.
func (w Window) End() time.Time { return w.Start.Add(w.Duration) }

// WithinTolerance reports whether two timestamps of the same claimed
// contact differ by no more than the drift tolerance. Outside the
// tolerance the two logs may be recording distinct duplicate contacts.
func WithinTolerance(a, b time.Time, tolerance time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
