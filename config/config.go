// Package config holds the typed configuration for the projection engine and
// the vegas line updater. Everything has a documented default; values can be
// overridden with an optional YAML file and then individual environment
// variables, in that order.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/btbtyler09/FF-Tracker/model"
	"gopkg.in/yaml.v3"
)

type ProjectionConfig struct {
	// Minimum games before actual performance gets its full early weight.
	MinGamesForActual int `yaml:"min_games_for_actual"`
	// Maximum weight for actual performance vs the vegas expectation.
	MaxActualWeight float64 `yaml:"max_actual_weight"`
	// Games played at which the actual weight reaches MaxActualWeight.
	WeightRampGames int `yaml:"weight_ramp_games"`
	// Only recompute projections once a week's games are all complete.
	UpdateAfterWeekComplete bool `yaml:"update_after_week_complete"`
	// Accepted but not consulted by the blend, which always uses the preseason
	// line; weekly lines feed display and history.
	UseLiveVegasLines bool `yaml:"use_live_vegas_lines"`
	// Scale factor applied to projected postseason bonuses.
	ConservativePostseason float64 `yaml:"conservative_postseason"`
	// Multiplier applied to the actual weight in the first 30% of the season.
	EarlySeasonDamping float64 `yaml:"early_season_damping"`
}

type LinesConfig struct {
	// Sources tried in order; the first one returning a line wins. "manual" is
	// never part of automatic iteration.
	Sources []string `yaml:"sources"`
	// Skip a team if its line for the week was updated within this window.
	UpdateFrequencyHours int `yaml:"update_frequency_hours"`
	// Delay between teams to respect the provider's request budget.
	RequestDelay time.Duration `yaml:"-"`
	// YAML/env form of RequestDelay, in seconds. Converted during Load.
	RequestDelaySeconds float64 `yaml:"request_delay"`
	// Retries for a single feed request.
	MaxRetries int `yaml:"max_retries"`
}

type Config struct {
	Projection ProjectionConfig `yaml:"projection"`
	Lines      LinesConfig      `yaml:"lines"`
}

func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		MinGamesForActual:       3,
		MaxActualWeight:         0.7,
		WeightRampGames:         6,
		UpdateAfterWeekComplete: true,
		UseLiveVegasLines:       true,
		ConservativePostseason:  0.8,
		EarlySeasonDamping:      0.5,
	}
}

func DefaultLinesConfig() LinesConfig {
	return LinesConfig{
		Sources:              []string{model.SourceProjected},
		UpdateFrequencyHours: 24,
		RequestDelay:         1 * time.Second,
		MaxRetries:           3,
	}
}

func Default() Config {
	return Config{
		Projection: DefaultProjectionConfig(),
		Lines:      DefaultLinesConfig(),
	}
}

// Load builds the config from defaults, an optional YAML file, and env
// overrides. An empty path skips the file step.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("error reading config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}
	if cfg.Lines.RequestDelaySeconds > 0 {
		cfg.Lines.RequestDelay = time.Duration(cfg.Lines.RequestDelaySeconds * float64(time.Second))
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []string

	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = n
		}
	}
	setFloat := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = f
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			*dst = strings.EqualFold(v, "true")
		}
	}

	setInt("PROJ_MIN_GAMES", &c.Projection.MinGamesForActual)
	setFloat("PROJ_MAX_WEIGHT", &c.Projection.MaxActualWeight)
	setInt("PROJ_RAMP_GAMES", &c.Projection.WeightRampGames)
	setBool("PROJ_WEEK_COMPLETE", &c.Projection.UpdateAfterWeekComplete)
	setBool("PROJ_USE_LIVE_LINES", &c.Projection.UseLiveVegasLines)
	setFloat("PROJ_CONSERVATIVE", &c.Projection.ConservativePostseason)
	setFloat("PROJ_EARLY_DAMPING", &c.Projection.EarlySeasonDamping)

	if v := os.Getenv("VEGAS_SOURCES"); v != "" {
		sources := strings.Split(v, ",")
		for i := range sources {
			sources[i] = strings.TrimSpace(sources[i])
		}
		c.Lines.Sources = sources
	}
	setInt("VEGAS_UPDATE_FREQ", &c.Lines.UpdateFrequencyHours)
	if v := os.Getenv("VEGAS_REQUEST_DELAY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("VEGAS_REQUEST_DELAY: %v", err))
		} else {
			c.Lines.RequestDelay = time.Duration(f * float64(time.Second))
		}
	}
	setInt("VEGAS_MAX_RETRIES", &c.Lines.MaxRetries)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config overrides: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) Validate() error {
	p := &c.Projection
	if p.MinGamesForActual < 1 {
		return fmt.Errorf("min_games_for_actual must be at least 1, got %d", p.MinGamesForActual)
	}
	if p.MaxActualWeight < 0 || p.MaxActualWeight > 1 {
		return fmt.Errorf("max_actual_weight must be in [0,1], got %f", p.MaxActualWeight)
	}
	if p.WeightRampGames < 1 {
		return fmt.Errorf("weight_ramp_games must be at least 1, got %d", p.WeightRampGames)
	}
	if p.ConservativePostseason < 0 || p.ConservativePostseason > 1 {
		return fmt.Errorf("conservative_postseason must be in [0,1], got %f", p.ConservativePostseason)
	}
	if p.EarlySeasonDamping < 0 || p.EarlySeasonDamping > 1 {
		return fmt.Errorf("early_season_damping must be in [0,1], got %f", p.EarlySeasonDamping)
	}

	l := &c.Lines
	if l.UpdateFrequencyHours < 1 {
		return fmt.Errorf("update_frequency_hours must be at least 1, got %d", l.UpdateFrequencyHours)
	}
	if l.RequestDelay < 0 {
		return fmt.Errorf("request_delay must not be negative, got %v", l.RequestDelay)
	}
	if l.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", l.MaxRetries)
	}
	for _, s := range l.Sources {
		if !slices.Contains([]string{model.SourceESPN, model.SourceProjected}, s) {
			return fmt.Errorf("unknown line source: %q", s)
		}
	}
	return nil
}
