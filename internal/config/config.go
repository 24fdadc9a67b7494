// Package config holds the checker configuration: input folders, the
// reference tables, the contest definition and the scoring knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"nraucheck/internal/contest"
	"nraucheck/internal/rules"
)

// Config holds all nraucheck configuration.
type Config struct {
	// Input folders, one per mode.
	CWDir string `yaml:"cw_dir"`
	PHDir string `yaml:"ph_dir"`

	// Reference tables.
	CountiesPath string `yaml:"counties_path"`
	PrefixesPath string `yaml:"prefixes_path"`

	// Outputs.
	ResultsCSV     string `yaml:"results_csv"`
	AnnotationsDir string `yaml:"annotations_dir"`

	Contest ContestConfig `yaml:"contest"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// ContestConfig pins the edition being scored: the contest date and the
// per-mode session start times (UTC). Each session lasts two hours.
type ContestConfig struct {
	Date    string `yaml:"date"`     // YYYY-MM-DD
	CWStart string `yaml:"cw_start"` // HH:MM, UTC
	PHStart string `yaml:"ph_start"` // HH:MM, UTC
	Hours   int    `yaml:"hours"`
}

// ScoringConfig holds the cross-checking tolerances.
type ScoringConfig struct {
	// ToleranceMinutes is the maximum timestamp drift between the two
	// logs of one contact.
	ToleranceMinutes int `yaml:"tolerance_minutes"`

	// ShadowThreshold is how many independent contacts must claim a
	// station that submitted no log before it earns partial trust.
	ShadowThreshold int `yaml:"shadow_threshold"`

	// Workers caps concurrent participant scoring; 0 or 1 scores
	// sequentially.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the configuration for the current edition: logs in
// ./CW and ./PH, counties.json alongside, sessions on the second Sunday of
// January.
func DefaultConfig() *Config {
	return &Config{
		CWDir:          "CW",
		PHDir:          "PH",
		CountiesPath:   "counties.json",
		ResultsCSV:     "results.csv",
		AnnotationsDir: "ubn",
		Contest: ContestConfig{
			Date:    secondSundayOfJanuary(time.Now().UTC().Year()).Format("2006-01-02"),
			CWStart: "06:30",
			PHStart: "09:00",
			Hours:   2,
		},
		Scoring: ScoringConfig{
			ToleranceMinutes: 5,
			ShadowThreshold:  10,
			Workers:          1,
		},
	}
}

// Load reads a YAML config file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults (still
// honoring environment overrides) when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(path)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides lets the environment override the file paths, which
// keeps scripted runs away from editing the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NRAUCHECK_CW_DIR"); v != "" {
		c.CWDir = v
	}
	if v := os.Getenv("NRAUCHECK_PH_DIR"); v != "" {
		c.PHDir = v
	}
	if v := os.Getenv("NRAUCHECK_COUNTIES"); v != "" {
		c.CountiesPath = v
	}
	if v := os.Getenv("NRAUCHECK_RESULTS"); v != "" {
		c.ResultsCSV = v
	}
}

// Validate checks the configuration is runnable.
func (c *Config) Validate() error {
	if c.CountiesPath == "" {
		return fmt.Errorf("counties_path is required")
	}
	if c.CWDir == "" && c.PHDir == "" {
		return fmt.Errorf("at least one of cw_dir and ph_dir is required")
	}
	if c.Scoring.ToleranceMinutes < 0 {
		return fmt.Errorf("tolerance_minutes must not be negative")
	}
	if c.Scoring.ShadowThreshold < 1 {
		return fmt.Errorf("shadow_threshold must be at least 1")
	}
	if _, err := c.Window(contest.ModeCW); err != nil {
		return err
	}
	if _, err := c.Window(contest.ModePH); err != nil {
		return err
	}
	return nil
}

// Window builds the session window for a mode from the contest definition.
func (c *Config) Window(mode contest.Mode) (rules.Window, error) {
	start := c.Contest.CWStart
	if mode == contest.ModePH {
		start = c.Contest.PHStart
	}
	t, err := time.Parse("2006-01-02 15:04", c.Contest.Date+" "+start)
	if err != nil {
		return rules.Window{}, fmt.Errorf("bad contest window for %s: %w", mode, err)
	}
	hours := c.Contest.Hours
	if hours <= 0 {
		hours = 2
	}
	return rules.Window{Start: t.UTC(), Duration: time.Duration(hours) * time.Hour}, nil
}

// Tolerance returns the drift tolerance as a duration.
func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.Scoring.ToleranceMinutes) * time.Minute
}

// secondSundayOfJanuary is the traditional contest date.
func secondSundayOfJanuary(year int) time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 7)
}
