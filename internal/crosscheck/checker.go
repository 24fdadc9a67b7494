package crosscheck

import (
	"fmt"
	"time"

	"nraucheck/internal/contest"
	"nraucheck/internal/rules"
	"nraucheck/internal/shadow"
)

// CountryResolver maps a callsign to its country name. Resolution is
// allowed to fail per callsign; the checker degrades to denying credit.
type CountryResolver interface {
	CountryOf(call string) (string, error)
}

// AreaDirectory answers whether an area code is valid for a country.
type AreaDirectory interface {
	ValidArea(country, area string) bool
}

// Checker judges claimed contacts against one mode's contest. The shadow
// index must be fully built over the same contest before the first Judge
// call; Judge never mutates it.
type Checker struct {
	Contest contest.Contest
	Shadow  shadow.Index
	Window  rules.Window

	// Tolerance is the maximum timestamp drift between the two logs of
	// one contact.
	Tolerance time.Duration

	// ShadowThreshold is how many independent contacts must claim an
	// absent station before its existence is accepted.
	ShadowThreshold int

	Resolver CountryResolver
	Areas    AreaDirectory
}

// Judge decides the grade of one claimed contact.
func (ck *Checker) Judge(q *contest.QSO) Outcome {
	if _, ok := ck.Contest.Lookup(q.DXCall); !ok {
		return ck.judgeShadow(q)
	}

	theirs, ok := FindQSO(ck.Contest, q.DXCall, q.OwnCall, q.Band(), 1)
	if !ok {
		return Outcome{
			Points: 0,
			Reason: QSONotFound,
			Detail: fmt.Sprintf("QSO not found in %s's log", q.DXCall),
		}
	}

	if !rules.FrequencyLegal(q.Mode, q.Freq) {
		return Outcome{
			Points: 0,
			Reason: FrequencyOutOfBand,
			Detail: fmt.Sprintf("%s QSO frequency %d out of contest band", q.Mode, q.Freq),
		}
	}

	if !ck.Window.Contains(q.Time) {
		return Outcome{
			Points: 0,
			Reason: OutsideContestWindow,
			Detail: fmt.Sprintf("QSO logged outside contest time (%s)", q.Time.UTC().Format("2006-01-02 15:04")),
		}
	}

	// Walk duplicate occurrences in submission order; the first one within
	// the drift tolerance wins. The walk is bounded by the number of
	// matching contacts in the counterpart's log.
	limit := countMatches(ck.Contest, q.DXCall, q.OwnCall, q.Band())
	for run := 1; run <= limit; run++ {
		if run > 1 {
			theirs, ok = FindQSO(ck.Contest, q.DXCall, q.OwnCall, q.Band(), run)
			if !ok {
				break
			}
		}
		if rules.WithinTolerance(q.Time, theirs.Time, ck.Tolerance) {
			return gradeExchange(q, theirs)
		}
	}
	return Outcome{
		Points:  0,
		Reason:  TimeMismatch,
		Detail:  fmt.Sprintf("Time differs: %s, %s", q.Time.UTC().Format("2006-01-02 15:04"), theirs.Time.UTC().Format("2006-01-02 15:04")),
		Matched: theirs,
	}
}

// judgeShadow handles counterparts that never submitted a log. Enough
// independent claims buy the station partial trust; the claimed area must
// still exist in the station's country.
func (ck *Checker) judgeShadow(q *contest.QSO) Outcome {
	if ck.Shadow.Count(q.DXCall, q.Mode) < ck.ShadowThreshold {
		return Outcome{
			Points: 0,
			Reason: MissingLog,
			Detail: fmt.Sprintf("Log not received from %s", q.DXCall),
		}
	}
	country, err := ck.Resolver.CountryOf(q.DXCall)
	if err != nil {
		return Outcome{
			Points: 0,
			Reason: LookupFailure,
			Detail: fmt.Sprintf("Country lookup failed for %s", q.DXCall),
		}
	}
	if !ck.Areas.ValidArea(country, q.Rcvd.Area()) {
		return Outcome{
			Points: 0,
			Reason: InvalidArea,
			Detail: fmt.Sprintf("No county %s in %s", q.Rcvd.Area(), country),
		}
	}
	return Outcome{
		Points: 1,
		Reason: UnverifiedShadowContact,
		Detail: fmt.Sprintf("Found %d+ QSOs of station %s", ck.ShadowThreshold, q.DXCall),
	}
}

// MultiplierAllowed applies the stricter eligibility rule for partial
// contacts: the claimed area must exist in the counterpart's country, and
// when the counterpart's own record is available its sent area must agree
// with what the claimant copied. Full-credit contacts always qualify.
func (ck *Checker) MultiplierAllowed(q *contest.QSO, o Outcome) bool {
	if o.Points == 2 {
		return true
	}
	if o.Points != 1 {
		return false
	}
	country, err := ck.Resolver.CountryOf(q.DXCall)
	if err != nil {
		return false
	}
	if !ck.Areas.ValidArea(country, q.Rcvd.Area()) {
		return false
	}
	if o.Matched != nil && o.Matched.Sent.Area() != q.Rcvd.Area() {
		return false
	}
	return true
}
