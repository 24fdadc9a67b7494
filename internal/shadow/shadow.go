// Package shadow indexes the stations that were worked during the contest
// but never submitted a log of their own. The index must be fully built
// from the whole contest before any contact is judged: the orchestrator's
// "log not received" decision depends on the final per-mode counts.
package shadow

import "nraucheck/internal/contest"

// Station is one counterpart with no submitted log: how many contacts
// claimed it per mode, and which stations claimed them.
type Station struct {
	Counts    map[contest.Mode]int
	Claimants map[contest.Mode][]string
}

// Index maps absent counterpart callsigns to their claim tallies.
// Read-only once built.
type Index map[string]*Station

// Build scans every contact of every submitted log and tallies the
// counterparts that are absent from the contest. One pass, no failure
// modes.
func Build(c contest.Contest) Index {
	idx := make(Index)
	for _, log := range c {
		for _, q := range log.QSOs {
			if _, ok := c[q.DXCall]; ok {
				continue
			}
			st := idx[q.DXCall]
			if st == nil {
				st = &Station{
					Counts:    make(map[contest.Mode]int),
					Claimants: make(map[contest.Mode][]string),
				}
				idx[q.DXCall] = st
			}
			st.Counts[q.Mode]++
			st.Claimants[q.Mode] = append(st.Claimants[q.Mode], q.OwnCall)
		}
	}
	return idx
}

// Count returns how many contacts on the given mode claimed the callsign.
func (idx Index) Count(call string, mode contest.Mode) int {
	if st, ok := idx[call]; ok {
		return st.Counts[mode]
	}
	return 0
}

// Claimants returns the callsigns that claimed contacts with call on the
// given mode, in claim order.
func (idx Index) Claimants(call string, mode contest.Mode) []string {
	if st, ok := idx[call]; ok {
		return st.Claimants[mode]
	}
	return nil
}
