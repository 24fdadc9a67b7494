package scoring

import "github.com/google/uuid"

// Session carries the run-level counters across both mode contests, so no
// package-level state survives a run. The ingestion layer feeds the parse
// totals; each Aggregator run feeds its mistake count.
type Session struct {
	RunID uuid.UUID

	QSOsParsed int
	LogsParsed int
	Mistakes   int
}

// NewSession starts a scoring session with a fresh run ID.
func NewSession() *Session {
	return &Session{RunID: uuid.New()}
}

// CountParsed records an ingestion batch: how many non-empty logs were
// read and how many contacts they held.
func (s *Session) CountParsed(logs, qsos int) {
	s.LogsParsed += logs
	s.QSOsParsed += qsos
}

// CountMistakes folds one contest's mistake total into the run.
func (s *Session) CountMistakes(n int) { s.Mistakes += n }
