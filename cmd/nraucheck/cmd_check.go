package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nraucheck/internal/cabrillo"
	"nraucheck/internal/config"
	"nraucheck/internal/contest"
	"nraucheck/internal/countries"
	"nraucheck/internal/crosscheck"
	"nraucheck/internal/report"
	"nraucheck/internal/scoring"
)

var (
	checkCWDir   string
	checkPHDir   string
	checkOut     string
	checkWorkers int
)

// checkCmd runs the full cross-checking pipeline
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Cross-check the CW and PH log folders and emit results",
	Long: `Reads the Cabrillo logs from the CW and PH folders, cross-checks every
claimed QSO against the counterpart's log and writes:

  - the results CSV (one row per participant, both modes)
  - one UBN-style annotation file per participant
  - a run summary on the diagnostic log

A missing or unreadable counties table aborts the run; a bad individual
contact never does.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkCWDir, "cw", "", "CW log folder (overrides config)")
	checkCmd.Flags().StringVar(&checkPHDir, "ph", "", "PH log folder (overrides config)")
	checkCmd.Flags().StringVarP(&checkOut, "out", "o", "", "results CSV path, \"-\" for stdout (overrides config)")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "concurrent participant scoring (overrides config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkCWDir != "" {
		cfg.CWDir = checkCWDir
	}
	if checkPHDir != "" {
		cfg.PHDir = checkPHDir
	}
	if checkOut != "" {
		cfg.ResultsCSV = checkOut
	}
	if checkWorkers > 0 {
		cfg.Scoring.Workers = checkWorkers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Reference tables. The counties table is a hard requirement; the
	// prefix resolver falls back to the built-in allocations.
	counties, err := countries.LoadCounties(cfg.CountiesPath)
	if err != nil {
		return err
	}
	resolver, err := countries.LoadResolver(cfg.PrefixesPath)
	if err != nil {
		return err
	}

	session := scoring.NewSession()
	logger.Info("Starting cross-check run",
		zap.String("run_id", session.RunID.String()),
		zap.String("cw_dir", cfg.CWDir),
		zap.String("ph_dir", cfg.PHDir),
	)

	var allResults []*scoring.Results
	for _, mode := range []contest.Mode{contest.ModeCW, contest.ModePH} {
		dir := cfg.CWDir
		if mode == contest.ModePH {
			dir = cfg.PHDir
		}
		if dir == "" {
			continue
		}
		res, err := checkMode(cmd.Context(), cfg, mode, dir, counties, resolver, session)
		if err != nil {
			return err
		}
		allResults = append(allResults, res)
	}

	merged := scoring.Merge(allResults...)
	if err := writeResults(cfg.ResultsCSV, merged); err != nil {
		return err
	}

	logger.Info(report.Summary(session),
		zap.String("run_id", session.RunID.String()),
		zap.Int("qsos", session.QSOsParsed),
		zap.Int("logs", session.LogsParsed),
		zap.Int("mistakes", session.Mistakes),
	)
	return nil
}

// checkMode scores one mode's folder as an independent contest.
func checkMode(ctx context.Context, cfg *config.Config, mode contest.Mode, dir string, counties countries.Counties, resolver *countries.Resolver, session *scoring.Session) (*scoring.Results, error) {
	c, stats, err := cabrillo.ParseDir(dir, mode)
	if err != nil {
		return nil, fmt.Errorf("ingesting %s logs: %w", mode, err)
	}
	session.CountParsed(stats.Files, stats.QSOs)
	for _, call := range stats.Empty {
		logger.Warn("No QSO found", zap.String("call", call), zap.String("mode", string(mode)))
	}
	logger.Debug("Ingested log folder",
		zap.String("mode", string(mode)),
		zap.Int("files", stats.Files),
		zap.Int("qsos", stats.QSOs),
	)

	window, err := cfg.Window(mode)
	if err != nil {
		return nil, err
	}
	agg := &scoring.Aggregator{
		Checker: &crosscheck.Checker{
			Window:          window,
			Tolerance:       cfg.Tolerance(),
			ShadowThreshold: cfg.Scoring.ShadowThreshold,
			Resolver:        resolver,
			Areas:           counties,
		},
		Workers: cfg.Scoring.Workers,
	}
	res, err := agg.Run(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("scoring %s contest: %w", mode, err)
	}
	res.Mode = mode
	session.CountMistakes(res.Mistakes)

	annDir := filepath.Join(cfg.AnnotationsDir, string(mode))
	if err := report.WriteAnnotationFiles(annDir, res.Participants); err != nil {
		return nil, err
	}
	logger.Debug("Scored contest",
		zap.String("mode", string(mode)),
		zap.Int("participants", len(res.Participants)),
		zap.Int("mistakes", res.Mistakes),
	)
	return res, nil
}

func writeResults(path string, merged []*scoring.ParticipantResult) error {
	if path == "-" {
		return report.WriteCSV(os.Stdout, merged)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	if err := report.WriteCSV(f, merged); err != nil {
		f.Close()
		return fmt.Errorf("writing results: %w", err)
	}
	return f.Close()
}
