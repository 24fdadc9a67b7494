// Package contest holds the record model for a contest run: contacts as
// submitted, per-participant logs and the per-mode contest mapping. The
// types here carry no scoring logic; they are built once by ingestion and
// treated as read-only by the cross-checking pipeline.
package contest

import (
	"fmt"
	"sort"
	"time"
)

// Mode is the operating mode of a contest session.
type Mode string

const (
	ModeCW Mode = "CW"
	ModePH Mode = "PH"
)

// Band is the frequency segment a contact was made on, derived from the
// contact's frequency and never stored independently.
type Band string

const (
	Band80m     Band = "80m"
	Band40m     Band = "40m"
	BandUnknown Band = ""
)

// BandOf maps a frequency in kHz to its band by the leading digit of the
// kHz value: 3xxx is 80m, 7xxx is 40m.
func BandOf(freqKHz int) Band {
	switch {
	case freqKHz >= 3000 && freqKHz < 4000:
		return Band80m
	case freqKHz >= 7000 && freqKHz < 8000:
		return Band40m
	default:
		return BandUnknown
	}
}

// Exchange is the 3-field data packet exchanged in a contact: signal
// report, serial number and area (county) code, in that order. Fields are
// kept as submitted; the grader decides how to compare them.
type Exchange []string

// Complete reports whether the exchange has exactly the three expected
// fields.
func (e Exchange) Complete() bool { return len(e) == 3 }

// Report returns field 0, or "" when absent.
func (e Exchange) Report() string {
	if len(e) > 0 {
		return e[0]
	}
	return ""
}

// Serial returns field 1, or "" when absent.
func (e Exchange) Serial() string {
	if len(e) > 1 {
		return e[1]
	}
	return ""
}

// Area returns field 2, or "" when absent.
func (e Exchange) Area() string {
	if len(e) > 2 {
		return e[2]
	}
	return ""
}

func (e Exchange) String() string {
	return fmt.Sprintf("%s %s %s", e.Report(), e.Serial(), e.Area())
}

// QSO is one logged radio exchange between two stations. Valid is the only
// mutable field: scoring clears it on any contact graded below full credit.
type QSO struct {
	Mode    Mode
	Freq    int // kHz
	Time    time.Time
	OwnCall string
	DXCall  string
	Sent    Exchange // what this station transmitted
	Rcvd    Exchange // what this station copied from the counterpart
	Valid   bool
}

// Band derives the contact's band from its frequency.
func (q *QSO) Band() Band { return BandOf(q.Freq) }

// String renders the contact the way it appears in the per-participant
// annotation files.
func (q *QSO) String() string {
	return fmt.Sprintf("%s %5d %s %s %s [%s] [%s]",
		q.Mode, q.Freq, q.Time.UTC().Format("2006-01-02 1504"),
		q.OwnCall, q.DXCall, q.Sent, q.Rcvd)
}

// Power is the power/category classification of a participant.
type Power string

const (
	PowerHigh  Power = "HIGH"
	PowerLow   Power = "LOW"
	PowerMulti Power = "MULTI"
)

// ParticipantLog is one station's submitted log. QSOs keep submission
// order. Power and Checklog are resolved from the log headers at ingestion
// time so nothing downstream probes for optional fields.
type ParticipantLog struct {
	Callsign string
	Mode     Mode
	Power    Power
	Checklog bool
	QSOs     []*QSO
}

// County is the area code the participant itself transmitted, taken from
// the first contact's sent exchange. Logs with no usable sent area yield
// "??" (kept in the results report as-is).
func (p *ParticipantLog) County() string {
	if len(p.QSOs) > 0 && p.QSOs[0].Sent.Complete() {
		return p.QSOs[0].Sent.Area()
	}
	return "??"
}

// Contest maps callsign to submitted log for one mode. CW and PH are
// scored as separate Contests.
type Contest map[string]*ParticipantLog

// Lookup returns the participant's log, reporting presence explicitly.
func (c Contest) Lookup(call string) (*ParticipantLog, bool) {
	log, ok := c[call]
	return log, ok
}

// Callsigns returns the participant callsigns in sorted order, for
// deterministic iteration.
func (c Contest) Callsigns() []string {
	calls := make([]string, 0, len(c))
	for call := range c {
		calls = append(calls, call)
	}
	sort.Strings(calls)
	return calls
}

// TotalQSOs counts the contacts across all submitted logs.
func (c Contest) TotalQSOs() int {
	n := 0
	for _, log := range c {
		n += len(log.QSOs)
	}
	return n
}
