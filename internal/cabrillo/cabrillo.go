// Package cabrillo ingests Cabrillo-format contest logs into the record
// model. Header quirks (CATEGORY vs CATEGORY-POWER vs CATEGORY-OPERATOR)
// are resolved here into the fixed Power/Checklog classification so the
// scoring pipeline never probes for optional fields.
package cabrillo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"nraucheck/internal/contest"
)

// LogExt is the filename extension submitted logs are expected to carry.
const LogExt = ".txt"

// Stats counts what a folder ingestion produced. Files counts only logs
// that contained at least one contact (the run summary convention).
type Stats struct {
	Files int
	QSOs  int
	Empty []string // callsigns of logs with no contacts
}

// ParseFile reads one Cabrillo log. Unknown header keys are ignored; a
// malformed QSO line fails the whole file.
func ParseFile(path string, mode contest.Mode) (*contest.ParticipantLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()

	log := &contest.ParticipantLog{Mode: mode, Power: contest.PowerHigh}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "CALLSIGN":
			log.Callsign = strings.ToUpper(value)
		case "CATEGORY-POWER":
			applyPower(log, value)
		case "CATEGORY":
			applyCategory(log, value)
		case "CATEGORY-OPERATOR":
			applyOperator(log, value)
		case "QSO":
			q, err := parseQSOLine(value)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), lineNo, err)
			}
			log.QSOs = append(log.QSOs, q)
		}
		// Everything else (START-OF-LOG, SOAPBOX, X-QSO, ...) is ignored.
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	if log.Callsign == "" {
		return nil, fmt.Errorf("%s: no CALLSIGN header", filepath.Base(path))
	}
	if len(log.QSOs) > 0 {
		log.Mode = log.QSOs[0].Mode
	}
	return log, nil
}

// ParseDir ingests every *.txt log in a folder into one mode's contest.
// Logs without contacts stay in the contest (the station did submit, so
// its counterparts are judged against an empty log, not the shadow index)
// but are reported in Stats.Empty.
func ParseDir(dir string, mode contest.Mode) (contest.Contest, Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("reading log folder: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), LogExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	c := make(contest.Contest, len(names))
	var st Stats
	for _, name := range names {
		log, err := ParseFile(filepath.Join(dir, name), mode)
		if err != nil {
			return nil, Stats{}, err
		}
		c[log.Callsign] = log
		if len(log.QSOs) == 0 {
			st.Empty = append(st.Empty, log.Callsign)
			continue
		}
		st.Files++
		st.QSOs += len(log.QSOs)
	}
	return c, st, nil
}

func applyPower(log *contest.ParticipantLog, value string) {
	switch strings.ToUpper(value) {
	case "HIGH", "HP":
		log.Power = contest.PowerHigh
	case "LOW", "LP":
		log.Power = contest.PowerLow
	}
}

func applyCategory(log *contest.ParticipantLog, value string) {
	v := strings.ToUpper(value)
	if strings.Contains(v, "HIGH") || strings.Contains(v, "HP") {
		log.Power = contest.PowerHigh
	}
	if strings.Contains(v, "LOW") || strings.Contains(v, "LP") {
		log.Power = contest.PowerLow
	}
	if strings.Contains(v, "MULTI") {
		log.Power = contest.PowerMulti
	}
	if strings.Contains(v, "CHECKLOG") {
		log.Checklog = true
	}
}

func applyOperator(log *contest.ParticipantLog, value string) {
	switch strings.ToUpper(value) {
	case "MULTI-OP":
		log.Power = contest.PowerMulti
	case "CHECKLOG":
		log.Checklog = true
	}
}

// parseQSOLine parses the body of a QSO line:
//
//	freq mode date time own-call rst ser area dx-call rst ser area
//
// Trailing received-exchange fields may be missing; the contact is still
// ingested and the grader fails it as an incomplete exchange.
func parseQSOLine(body string) (*contest.QSO, error) {
	t := strings.Fields(body)
	if len(t) < 9 {
		return nil, fmt.Errorf("QSO line has %d fields, want at least 9", len(t))
	}
	freq, err := strconv.Atoi(t[0])
	if err != nil {
		return nil, fmt.Errorf("bad frequency %q: %w", t[0], err)
	}
	mode, err := parseMode(t[1])
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse("2006-01-02 1504", t[2]+" "+t[3])
	if err != nil {
		return nil, fmt.Errorf("bad timestamp %q %q: %w", t[2], t[3], err)
	}
	q := &contest.QSO{
		Mode:    mode,
		Freq:    freq,
		Time:    ts.UTC(),
		OwnCall: strings.ToUpper(t[4]),
		Sent:    exchangeFrom(t[5:8]),
		DXCall:  strings.ToUpper(t[8]),
		Valid:   true,
	}
	end := len(t)
	if end > 12 {
		end = 12
	}
	q.Rcvd = exchangeFrom(t[9:end])
	return q, nil
}

func parseMode(s string) (contest.Mode, error) {
	switch strings.ToUpper(s) {
	case "CW":
		return contest.ModeCW, nil
	case "PH", "SSB":
		return contest.ModePH, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

func exchangeFrom(fields []string) contest.Exchange {
	ex := make(contest.Exchange, 0, len(fields))
	for _, f := range fields {
		ex = append(ex, strings.ToUpper(f))
	}
	return ex
}
