package shadow

import (
	"testing"

	"nraucheck/internal/contest"
)

func qso(mode contest.Mode, own, dx string) *contest.QSO {
	return &contest.QSO{Mode: mode, Freq: 3550, OwnCall: own, DXCall: dx}
}

func TestBuildCountsAbsentCounterparts(t *testing.T) {
	c := contest.Contest{
		"LY2EN": {Callsign: "LY2EN", QSOs: []*contest.QSO{
			qso(contest.ModeCW, "LY2EN", "ES5TV"), // submitted, not shadow
			qso(contest.ModeCW, "LY2EN", "OH1XX"),
			qso(contest.ModeCW, "LY2EN", "OH1XX"), // dupe still counts
		}},
		"ES5TV": {Callsign: "ES5TV", QSOs: []*contest.QSO{
			qso(contest.ModeCW, "ES5TV", "OH1XX"),
			qso(contest.ModeCW, "ES5TV", "SM5QQ"),
		}},
	}

	idx := Build(c)

	if got := idx.Count("ES5TV", contest.ModeCW); got != 0 {
		t.Errorf("submitted station counted as shadow: %d", got)
	}
	if got := idx.Count("OH1XX", contest.ModeCW); got != 3 {
		t.Errorf("Count(OH1XX) = %d, want 3", got)
	}
	if got := idx.Count("SM5QQ", contest.ModeCW); got != 1 {
		t.Errorf("Count(SM5QQ) = %d, want 1", got)
	}
	if got := idx.Count("OH1XX", contest.ModePH); got != 0 {
		t.Errorf("per-mode counts must be separate, got %d", got)
	}
	if got := idx.Count("NO1NE", contest.ModeCW); got != 0 {
		t.Errorf("unknown station Count = %d, want 0", got)
	}
}

func TestBuildClaimants(t *testing.T) {
	c := contest.Contest{
		"LY2EN": {Callsign: "LY2EN", QSOs: []*contest.QSO{
			qso(contest.ModeCW, "LY2EN", "OH1XX"),
		}},
		"ES5TV": {Callsign: "ES5TV", QSOs: []*contest.QSO{
			qso(contest.ModeCW, "ES5TV", "OH1XX"),
		}},
	}

	idx := Build(c)
	claimants := idx.Claimants("OH1XX", contest.ModeCW)
	if len(claimants) != 2 {
		t.Fatalf("Claimants = %v, want 2 entries", claimants)
	}
	seen := map[string]bool{}
	for _, call := range claimants {
		seen[call] = true
	}
	if !seen["LY2EN"] || !seen["ES5TV"] {
		t.Errorf("Claimants = %v, want LY2EN and ES5TV", claimants)
	}
}
