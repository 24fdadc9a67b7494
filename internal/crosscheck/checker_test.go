package crosscheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nraucheck/internal/contest"
	"nraucheck/internal/countries"
	"nraucheck/internal/rules"
	"nraucheck/internal/shadow"
)

func newChecker(c contest.Contest) *Checker {
	return &Checker{
		Contest:         c,
		Shadow:          shadow.Build(c),
		Window:          cwWindow(),
		Tolerance:       5 * time.Minute,
		ShadowThreshold: 10,
		Resolver:        countries.NewResolver(),
		Areas:           testCounties(),
	}
}

// shadowIndex hand-builds an index with a fixed claim count for one
// station.
func shadowIndex(call string, mode contest.Mode, count int) shadow.Index {
	st := &shadow.Station{
		Counts:    map[contest.Mode]int{mode: count},
		Claimants: map[contest.Mode][]string{},
	}
	return shadow.Index{call: st}
}

func TestJudgeFullCreditAtBandEdge(t *testing.T) {
	// 7000 kHz CW inside the session, matched within tolerance, all
	// exchange fields agreeing.
	mine := newQSO(contest.ModeCW, 7000, at(6, 45), "LY2EN", "ES5TV",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "002", "HM"})
	theirs := newQSO(contest.ModeCW, 7000, at(6, 47), "ES5TV", "LY2EN",
		contest.Exchange{"599", "002", "HM"},
		contest.Exchange{"599", "001", "VLN"})
	c := buildContest(participant("LY2EN", mine), participant("ES5TV", theirs))

	o := newChecker(c).Judge(mine)
	require.Equal(t, 2, o.Points)
	assert.Equal(t, Verified, o.Reason)
	assert.Empty(t, o.Detail)
	assert.Same(t, theirs, o.Matched)
}

func TestJudgeShadowThresholdBoundary(t *testing.T) {
	mine := newQSO(contest.ModeCW, 3550, at(6, 45), "LY2EN", "OH1XX",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "005", "UM"})
	ck := newChecker(buildContest(participant("LY2EN", mine)))

	// Nine independent claims: not credible yet.
	ck.Shadow = shadowIndex("OH1XX", contest.ModeCW, 9)
	o := ck.Judge(mine)
	require.Equal(t, 0, o.Points)
	assert.Equal(t, MissingLog, o.Reason)
	assert.Contains(t, o.Detail, "OH1XX")

	// Ten claims: partial trust, area UM is valid in Finland.
	ck.Shadow = shadowIndex("OH1XX", contest.ModeCW, 10)
	o = ck.Judge(mine)
	require.Equal(t, 1, o.Points)
	assert.Equal(t, UnverifiedShadowContact, o.Reason)
}

func TestJudgeShadowInvalidArea(t *testing.T) {
	mine := newQSO(contest.ModeCW, 3550, at(6, 45), "LY2EN", "OH1XX",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "005", "ZZ"})
	ck := newChecker(buildContest(participant("LY2EN", mine)))
	ck.Shadow = shadowIndex("OH1XX", contest.ModeCW, 12)

	o := ck.Judge(mine)
	require.Equal(t, 0, o.Points)
	assert.Equal(t, InvalidArea, o.Reason)
	assert.Contains(t, o.Detail, "No county ZZ in Finland")
}

func TestJudgeShadowLookupFailure(t *testing.T) {
	// K1ABC has no prefix in the resolver; the run degrades, not crashes.
	mine := newQSO(contest.ModeCW, 3550, at(6, 45), "LY2EN", "K1ABC",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "005", "UM"})
	ck := newChecker(buildContest(participant("LY2EN", mine)))
	ck.Shadow = shadowIndex("K1ABC", contest.ModeCW, 15)

	o := ck.Judge(mine)
	require.Equal(t, 0, o.Points)
	assert.Equal(t, LookupFailure, o.Reason)
}

func TestJudgeQSONotFound(t *testing.T) {
	mine := newQSO(contest.ModeCW, 3550, at(6, 45), "LY2EN", "ES5TV",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "002", "HM"})
	// ES5TV submitted a log but never logged LY2EN.
	unrelated := newQSO(contest.ModeCW, 3550, at(6, 50), "ES5TV", "YL2KO",
		contest.Exchange{"599", "002", "HM"},
		contest.Exchange{"599", "001", "RI"})
	c := buildContest(participant("LY2EN", mine), participant("ES5TV", unrelated))

	o := newChecker(c).Judge(mine)
	require.Equal(t, 0, o.Points)
	assert.Equal(t, QSONotFound, o.Reason)
	assert.Contains(t, o.Detail, "ES5TV's log")
}

func TestJudgeFrequencyOutOfBand(t *testing.T) {
	// 3555 kHz is legal CW but outside every PH segment; exchange content
	// is irrelevant.
	mine := newQSO(contest.ModePH, 3555, at(9, 30), "LY2EN", "ES5TV",
		contest.Exchange{"59", "001", "VLN"},
		contest.Exchange{"59", "002", "HM"})
	theirs := newQSO(contest.ModePH, 3555, at(9, 31), "ES5TV", "LY2EN",
		contest.Exchange{"59", "002", "HM"},
		contest.Exchange{"59", "001", "VLN"})
	c := buildContest(participant("LY2EN", mine), participant("ES5TV", theirs))

	ck := newChecker(c)
	ck.Window = rules.Window{Start: at(9, 0), Duration: 2 * time.Hour}
	o := ck.Judge(mine)
	require.Equal(t, 0, o.Points)
	assert.Equal(t, FrequencyOutOfBand, o.Reason)
	assert.Contains(t, o.Detail, "3555")
}

func TestJudgeOutsideContestWindow(t *testing.T) {
	mine := newQSO(contest.ModeCW, 3550, at(9, 0), "LY2EN", "ES5TV",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "002", "HM"})
	theirs := newQSO(contest.ModeCW, 3550, at(9, 1), "ES5TV", "LY2EN",
		contest.Exchange{"599", "002", "HM"},
		contest.Exchange{"599", "001", "VLN"})
	c := buildContest(participant("LY2EN", mine), participant("ES5TV", theirs))

	o := newChecker(c).Judge(mine)
	require.Equal(t, 0, o.Points)
	assert.Equal(t, OutsideContestWindow, o.Reason)
}

func TestJudgeDuplicateResolution(t *testing.T) {
	// The counterpart logged the contact twice: a stale first entry and a
	// re-run 40 minutes later. The claimant's timestamp matches only the
	// re-run, so the walk must reach occurrence 2.
	mine := newQSO(contest.ModeCW, 3550, at(7, 30), "LY2EN", "ES5TV",
		contest.Exchange{"599", "021", "VLN"},
		contest.Exchange{"599", "030", "HM"})
	stale := newQSO(contest.ModeCW, 3550, at(6, 50), "ES5TV", "LY2EN",
		contest.Exchange{"599", "011", "HM"},
		contest.Exchange{"599", "008", "VLN"})
	rerun := newQSO(contest.ModeCW, 3550, at(7, 28), "ES5TV", "LY2EN",
		contest.Exchange{"599", "030", "HM"},
		contest.Exchange{"599", "021", "VLN"})
	c := buildContest(participant("LY2EN", mine), participant("ES5TV", stale, rerun))

	o := newChecker(c).Judge(mine)
	require.Equal(t, 2, o.Points, "detail: %s", o.Detail)
	assert.Same(t, rerun, o.Matched)
}

func TestJudgeTimeMismatchAfterExhaustingDupes(t *testing.T) {
	mine := newQSO(contest.ModeCW, 3550, at(8, 15), "LY2EN", "ES5TV",
		contest.Exchange{"599", "021", "VLN"},
		contest.Exchange{"599", "030", "HM"})
	early := newQSO(contest.ModeCW, 3550, at(6, 35), "ES5TV", "LY2EN",
		contest.Exchange{"599", "030", "HM"},
		contest.Exchange{"599", "021", "VLN"})
	c := buildContest(participant("LY2EN", mine), participant("ES5TV", early))

	o := newChecker(c).Judge(mine)
	require.Equal(t, 0, o.Points)
	assert.Equal(t, TimeMismatch, o.Reason)
	assert.Contains(t, o.Detail, "Time differs")
}

func TestMultiplierAllowed(t *testing.T) {
	ck := newChecker(buildContest())

	mine := newQSO(contest.ModeCW, 3550, at(6, 45), "LY2EN", "ES5TV",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "002", "HM"})

	// Full credit always qualifies.
	assert.True(t, ck.MultiplierAllowed(mine, Outcome{Points: 2}))

	// Partial credit: claimed area must exist in the counterpart's
	// country.
	assert.True(t, ck.MultiplierAllowed(mine, Outcome{Points: 1}))

	badArea := newQSO(contest.ModeCW, 3550, at(6, 45), "LY2EN", "ES5TV",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "002", "ZZ"})
	assert.False(t, ck.MultiplierAllowed(badArea, Outcome{Points: 1}))

	// A matched contact whose own sent area disagrees blocks the credit.
	theirs := newQSO(contest.ModeCW, 3550, at(6, 46), "ES5TV", "LY2EN",
		contest.Exchange{"599", "002", "TA"},
		contest.Exchange{"599", "001", "VLN"})
	assert.False(t, ck.MultiplierAllowed(mine, Outcome{Points: 1, Matched: theirs}))

	// Unresolvable counterpart denies the multiplier, never crashes.
	unknown := newQSO(contest.ModeCW, 3550, at(6, 45), "LY2EN", "K1ABC",
		contest.Exchange{"599", "001", "VLN"},
		contest.Exchange{"599", "002", "HM"})
	assert.False(t, ck.MultiplierAllowed(unknown, Outcome{Points: 1}))

	// Zero-point contacts never earn a multiplier.
	assert.False(t, ck.MultiplierAllowed(mine, Outcome{Points: 0}))
}
