package scoring

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"nraucheck/internal/contest"
	"nraucheck/internal/crosscheck"
	"nraucheck/internal/shadow"
)

// Results is the outcome of scoring one mode's contest.
type Results struct {
	Mode         contest.Mode
	Participants []*ParticipantResult // sorted by callsign
	Mistakes     int                  // contacts graded below full credit
}

// Aggregator drives the two-phase scoring of a contest: first the shadow
// index over the whole contest, then judging every contact of every
// participant. Judging is read-only over the contest and the frozen index,
// so participants can be scored in parallel.
type Aggregator struct {
	Checker *crosscheck.Checker

	// Workers caps concurrent participant scoring; values below 2 score
	// sequentially.
	Workers int
}

// Run scores the contest. The shadow index is fully built before the
// first contact is judged; participant order in the results is sorted by
// callsign regardless of scheduling.
func (a *Aggregator) Run(ctx context.Context, c contest.Contest) (*Results, error) {
	a.Checker.Contest = c
	a.Checker.Shadow = shadow.Build(c)

	// Empty logs stay in the contest (their counterparts are judged
	// against them) but produce no result row.
	var calls []string
	for _, call := range c.Callsigns() {
		if len(c[call].QSOs) > 0 {
			calls = append(calls, call)
		}
	}
	results := make([]*ParticipantResult, len(calls))

	if a.Workers > 1 {
		eg, _ := errgroup.WithContext(ctx)
		eg.SetLimit(a.Workers)
		for i, call := range calls {
			i, call := i, call
			eg.Go(func() error {
				results[i] = a.scoreParticipant(c[call])
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, call := range calls {
			results[i] = a.scoreParticipant(c[call])
		}
	}

	res := &Results{Participants: results}
	for _, r := range results {
		if res.Mode == "" {
			res.Mode = r.Mode
		}
		for _, j := range r.QSOs {
			if j.Outcome.Points < 2 {
				res.Mistakes++
			}
		}
	}
	return res, nil
}

// scoreParticipant judges one station's contacts in submission order and
// folds them into a fresh result. Multipliers are credited first-seen per
// band; a later contact claiming an already-credited area earns points but
// no new multiplier.
func (a *Aggregator) scoreParticipant(log *contest.ParticipantLog) *ParticipantResult {
	r := &ParticipantResult{
		Callsign: log.Callsign,
		Mode:     log.Mode,
		Power:    log.Power,
		County:   log.County(),
		Checklog: log.Checklog,
		Mults80:  make(map[string]bool),
		Mults40:  make(map[string]bool),
	}
	for _, q := range log.QSOs {
		o := a.Checker.Judge(q)
		q.Valid = o.Points == 2

		if o.Points > 0 && a.Checker.MultiplierAllowed(q, o) {
			area := q.Rcvd.Area()
			if area != "" && !a.credited(r, q.Band(), area) {
				o.Multiplier = area
			}
		}
		r.QSOs = append(r.QSOs, Judged{QSO: q, Outcome: o})
		r.tally(Judged{QSO: q, Outcome: o})
	}
	return r
}

func (a *Aggregator) credited(r *ParticipantResult, band contest.Band, area string) bool {
	switch band {
	case contest.Band80m:
		return r.Mults80[area]
	case contest.Band40m:
		return r.Mults40[area]
	default:
		return true
	}
}

// Merge combines per-mode results into one report ordering: CW before PH,
// callsign-sorted within a mode (the order the original results sheet
// used).
func Merge(all ...*Results) []*ParticipantResult {
	var out []*ParticipantResult
	for _, res := range all {
		if res == nil {
			continue
		}
		out = append(out, res.Participants...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode == contest.ModeCW
		}
		return out[i].Callsign < out[j].Callsign
	})
	return out
}
