package crosscheck

import (
	"time"

	"nraucheck/internal/contest"
	"nraucheck/internal/countries"
	"nraucheck/internal/rules"
)

// contestDay is the edition all tests score: CW session 06:30-08:30 UTC.
var contestDay = time.Date(2022, 1, 9, 0, 0, 0, 0, time.UTC)

func at(hh, mm int) time.Time {
	return contestDay.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func cwWindow() rules.Window {
	return rules.Window{Start: at(6, 30), Duration: 2 * time.Hour}
}

func newQSO(mode contest.Mode, freq int, ts time.Time, own, dx string, sent, rcvd contest.Exchange) *contest.QSO {
	return &contest.QSO{
		Mode:    mode,
		Freq:    freq,
		Time:    ts,
		OwnCall: own,
		DXCall:  dx,
		Sent:    sent,
		Rcvd:    rcvd,
		Valid:   true,
	}
}

func buildContest(logs ...*contest.ParticipantLog) contest.Contest {
	c := make(contest.Contest, len(logs))
	for _, l := range logs {
		c[l.Callsign] = l
	}
	return c
}

func participant(call string, qsos ...*contest.QSO) *contest.ParticipantLog {
	return &contest.ParticipantLog{
		Callsign: call,
		Mode:     contest.ModeCW,
		Power:    contest.PowerHigh,
		QSOs:     qsos,
	}
}

// testCounties gives every test the same small reference table.
func testCounties() countries.Counties {
	return countries.Counties{
		"Lithuania": {"VLN": true, "KAU": true},
		"Estonia":   {"HM": true, "TA": true},
		"Finland":   {"UM": true, "OU": true},
	}
}
