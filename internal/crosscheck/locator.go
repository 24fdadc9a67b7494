package crosscheck

import "nraucheck/internal/contest"

// FindQSO returns the occurrence-th contact in owner's log whose
// counterpart is dxCall on the given band, scanning in submission order.
// The occurrence index disambiguates duplicate contacts: increasing it
// walks forward through re-runs between the same two stations.
//
// The second return value is false when owner submitted no log or the log
// holds fewer than occurrence matching contacts.
func FindQSO(c contest.Contest, owner, dxCall string, band contest.Band, occurrence int) (*contest.QSO, bool) {
	log, ok := c.Lookup(owner)
	if !ok || occurrence < 1 {
		return nil, false
	}
	found := 0
	for _, q := range log.QSOs {
		if q.DXCall == dxCall && q.Band() == band {
			found++
			if found == occurrence {
				return q, true
			}
		}
	}
	return nil, false
}

// countMatches reports how many contacts in owner's log match dxCall on
// band; it bounds the duplicate-resolution walk in the orchestrator.
func countMatches(c contest.Contest, owner, dxCall string, band contest.Band) int {
	log, ok := c.Lookup(owner)
	if !ok {
		return 0
	}
	n := 0
	for _, q := range log.QSOs {
		if q.DXCall == dxCall && q.Band() == band {
			n++
		}
	}
	return n
}
