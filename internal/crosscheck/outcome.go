// Package crosscheck implements the cross-checking engine: locating the
// counterpart's record of a claimed contact, grading the exchanged
// information and deciding how many points the contact earns.
package crosscheck

import "nraucheck/internal/contest"

// Reason classifies why a contact earned its grade.
type Reason string

const (
	// Verified is the only grade-2 reason: the contact matched and every
	// exchange field agreed.
	Verified Reason = "VERIFIED"

	// IncompleteExchange: a sent or received exchange does not have
	// exactly three fields.
	IncompleteExchange Reason = "INCOMPLETE_EXCHANGE"

	// FieldMismatch: report, serial or area disagreement between the two
	// logs of the contact.
	FieldMismatch Reason = "FIELD_MISMATCH"

	// MissingLog: the counterpart never submitted a log and too few
	// independent stations worked it to accept its existence.
	MissingLog Reason = "MISSING_LOG"

	// UnverifiedShadowContact: the counterpart never submitted a log but
	// enough stations worked it; partial credit by policy.
	UnverifiedShadowContact Reason = "UNVERIFIED_SHADOW_CONTACT"

	// QSONotFound: the counterpart's log holds no corresponding contact.
	QSONotFound Reason = "QSO_NOT_FOUND"

	// FrequencyOutOfBand: the claimed frequency is outside the mode's
	// contest segments.
	FrequencyOutOfBand Reason = "FREQUENCY_OUT_OF_BAND"

	// OutsideContestWindow: the contact is timestamped outside the mode's
	// session window.
	OutsideContestWindow Reason = "OUTSIDE_CONTEST_WINDOW"

	// TimeMismatch: every candidate contact in the counterpart's log is
	// beyond the drift tolerance.
	TimeMismatch Reason = "TIME_MISMATCH"

	// InvalidArea: the claimed area code does not exist in the
	// counterpart's country.
	InvalidArea Reason = "INVALID_AREA"

	// LookupFailure: the counterpart's country could not be resolved.
	LookupFailure Reason = "LOOKUP_FAILURE"
)

// Outcome is the judgment of one claimed contact. Produced once, never
// mutated.
type Outcome struct {
	Points  int // 0, 1 or 2
	Reason  Reason
	Detail  string       // human-readable annotation for the audit report
	Matched *contest.QSO // counterpart's record, when one was located
	// Multiplier is the area code newly credited on this contact, set by
	// the aggregator; empty when no multiplier was earned here.
	Multiplier string
}
