// Package scoring runs the cross-checker over every contact of every
// participant and derives the final per-participant results.
package scoring

import (
	"nraucheck/internal/contest"
	"nraucheck/internal/crosscheck"
)

// Judged pairs a claimed contact with its outcome, in submission order.
type Judged struct {
	QSO     *contest.QSO
	Outcome crosscheck.Outcome
}

// ParticipantResult is one station's final tally. Everything here is
// derived from the outcome list; there is no second bookkeeping pass.
type ParticipantResult struct {
	Callsign string
	Mode     contest.Mode
	Power    contest.Power
	County   string
	Checklog bool

	QSOs []Judged

	QSOCount80 int
	QSOCount40 int
	Points80   int
	Points40   int
	Mults80    map[string]bool
	Mults40    map[string]bool
}

// Score is the contest score: summed points times the count of distinct
// multipliers, across both bands.
func (r *ParticipantResult) Score() int {
	return (r.Points80 + r.Points40) * (len(r.Mults80) + len(r.Mults40))
}

// Recompute rebuilds the per-band tallies from the outcome list alone.
// The stored aggregates must always equal a fresh recomputation; the
// aggregator uses this in tests to pin the invariant.
func (r *ParticipantResult) Recompute() ParticipantResult {
	fresh := ParticipantResult{
		Callsign: r.Callsign,
		Mode:     r.Mode,
		Power:    r.Power,
		County:   r.County,
		Checklog: r.Checklog,
		QSOs:     r.QSOs,
		Mults80:  make(map[string]bool),
		Mults40:  make(map[string]bool),
	}
	for _, j := range r.QSOs {
		fresh.tally(j)
	}
	return fresh
}

// tally folds one judged contact into the running aggregates. Only
// positive grades count toward QSO totals and points; the multiplier code
// on the outcome was already vetted and deduplicated by the aggregator.
func (r *ParticipantResult) tally(j Judged) {
	if j.Outcome.Points <= 0 {
		return
	}
	switch j.QSO.Band() {
	case contest.Band80m:
		r.QSOCount80++
		r.Points80 += j.Outcome.Points
		if j.Outcome.Multiplier != "" {
			r.Mults80[j.Outcome.Multiplier] = true
		}
	case contest.Band40m:
		r.QSOCount40++
		r.Points40 += j.Outcome.Points
		if j.Outcome.Multiplier != "" {
			r.Mults40[j.Outcome.Multiplier] = true
		}
	}
}
