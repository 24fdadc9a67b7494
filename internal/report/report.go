// Package report renders the scoring outputs: the results CSV, the
// per-participant UBN-style annotation files and the run summary fields.
// Content comes from the scoring package; this package only formats.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"nraucheck/internal/scoring"
)

// csvHeader is the fixed column order of the results sheet.
var csvHeader = []string{
	"MODE", "CALL",
	"QSO_COUNT_80m", "QSO_COUNT_40m",
	"POINT_80m", "POINT_40m",
	"MULT_80m", "MULT_40m",
	"SCORE", "POWER", "COUNTY", "CHECKLOG",
}

// WriteCSV writes the results sheet for the given participants, in the
// order handed in (the caller decides ordering).
func WriteCSV(w io.Writer, participants []*scoring.ParticipantResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range participants {
		checklog := "N"
		if r.Checklog {
			checklog = "Y"
		}
		rec := []string{
			string(r.Mode),
			r.Callsign,
			strconv.Itoa(r.QSOCount80),
			strconv.Itoa(r.QSOCount40),
			strconv.Itoa(r.Points80),
			strconv.Itoa(r.Points40),
			strconv.Itoa(len(r.Mults80)),
			strconv.Itoa(len(r.Mults40)),
			strconv.Itoa(r.Score()),
			string(r.Power),
			r.County,
			checklog,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnnotations renders one participant's per-contact audit trail: the
// serialized contact, its grade, the grading detail when one exists, and
// the area code when a multiplier was newly credited on that contact.
func WriteAnnotations(w io.Writer, r *scoring.ParticipantResult) error {
	for _, j := range r.QSOs {
		line := fmt.Sprintf("%s\t%d", j.QSO, j.Outcome.Points)
		if j.Outcome.Detail != "" {
			line += fmt.Sprintf("\t(%s)", j.Outcome.Detail)
		}
		if j.Outcome.Multiplier != "" {
			line += fmt.Sprintf("\t+%s", j.Outcome.Multiplier)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnnotationFiles writes one <CALL>.log annotation file per
// participant into dir, creating it if needed.
func WriteAnnotationFiles(dir string, participants []*scoring.ParticipantResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating annotation folder: %w", err)
	}
	for _, r := range participants {
		path := filepath.Join(dir, r.Callsign+".log")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating annotation file: %w", err)
		}
		if err := WriteAnnotations(f, r); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Summary renders the run-level totals line for the diagnostic channel.
func Summary(s *scoring.Session) string {
	return fmt.Sprintf("%d QSO parsed (%d files), found %d mistakes",
		s.QSOsParsed, s.LogsParsed, s.Mistakes)
}
