package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level prosecheck configuration.
type Config struct {
	Language       string     `mapstructure:"language"`
	MinTextRunes   int        `mapstructure:"min_text_runes"`
	MinChangeRunes int        `mapstructure:"min_change_runes"`
	Engines        Engines    `mapstructure:"engines"`
	Scheduler      Scheduler  `mapstructure:"scheduler"`
	Cache          Cache      `mapstructure:"cache"`
	Classifier     Classifier `mapstructure:"classifier"`
	Output         Output     `mapstructure:"output"`
}

// Engines toggles individual detection engines on or off. An engine that is
// off never appears in the orchestrator's active adapter list.
type Engines struct {
	Rules       bool   `mapstructure:"rules"`
	Dictionary  bool   `mapstructure:"dictionary"`
	Fuzzy       bool   `mapstructure:"fuzzy"`
	Style       bool   `mapstructure:"style"`
	Langproc    bool   `mapstructure:"langproc"`
	LangprocURL string `mapstructure:"langproc_url"`
	Failover    bool   `mapstructure:"failover"`
}

// Scheduler defines debounce and concurrency limits for checking.
type Scheduler struct {
	DebounceMs          int `mapstructure:"debounce_ms"`
	MaxConcurrentChecks int `mapstructure:"max_concurrent_checks"`
	AdapterTimeoutMs    int `mapstructure:"adapter_timeout_ms"`
	GlobalTimeoutMs     int `mapstructure:"global_timeout_ms"`
}

// Cache defines result-cache bounds and near-duplicate matching knobs.
type Cache struct {
	TTLMs               int     `mapstructure:"ttl_ms"`
	Capacity            int     `mapstructure:"capacity"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	LengthTolerance     float64 `mapstructure:"length_tolerance"`
	ProbeDepth          int     `mapstructure:"probe_depth"`
}

// Classifier defines suggestion-safety classification thresholds.
type Classifier struct {
	AutoThreshold     float64 `mapstructure:"auto_threshold"`
	SemiThreshold     float64 `mapstructure:"semi_threshold"`
	MinSafety         float64 `mapstructure:"min_safety"`
	MaxComplexity     float64 `mapstructure:"max_complexity"`
	ConservativeAuto  float64 `mapstructure:"conservative_auto"`
	ConservativeSemi  float64 `mapstructure:"conservative_semi"`
	ConservativeMode  bool    `mapstructure:"conservative_mode"`
	MaxReplacementLen int     `mapstructure:"max_replacement_len"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("min_text_runes", DefaultMinTextRunes)
	v.SetDefault("min_change_runes", DefaultMinChangeRunes)
	v.SetDefault("engines.rules", DefaultEngines.Rules)
	v.SetDefault("engines.dictionary", DefaultEngines.Dictionary)
	v.SetDefault("engines.fuzzy", DefaultEngines.Fuzzy)
	v.SetDefault("engines.style", DefaultEngines.Style)
	v.SetDefault("engines.langproc", DefaultEngines.Langproc)
	v.SetDefault("engines.langproc_url", DefaultEngines.LangprocURL)
	v.SetDefault("engines.failover", DefaultEngines.Failover)
	v.SetDefault("scheduler.debounce_ms", DefaultScheduler.DebounceMs)
	v.SetDefault("scheduler.max_concurrent_checks", DefaultScheduler.MaxConcurrentChecks)
	v.SetDefault("scheduler.adapter_timeout_ms", DefaultScheduler.AdapterTimeoutMs)
	v.SetDefault("scheduler.global_timeout_ms", DefaultScheduler.GlobalTimeoutMs)
	v.SetDefault("cache.ttl_ms", DefaultCache.TTLMs)
	v.SetDefault("cache.capacity", DefaultCache.Capacity)
	v.SetDefault("cache.similarity_threshold", DefaultCache.SimilarityThreshold)
	v.SetDefault("cache.length_tolerance", DefaultCache.LengthTolerance)
	v.SetDefault("cache.probe_depth", DefaultCache.ProbeDepth)
	v.SetDefault("classifier.auto_threshold", DefaultClassifier.AutoThreshold)
	v.SetDefault("classifier.semi_threshold", DefaultClassifier.SemiThreshold)
	v.SetDefault("classifier.min_safety", DefaultClassifier.MinSafety)
	v.SetDefault("classifier.max_complexity", DefaultClassifier.MaxComplexity)
	v.SetDefault("classifier.conservative_auto", DefaultClassifier.ConservativeAuto)
	v.SetDefault("classifier.conservative_semi", DefaultClassifier.ConservativeSemi)
	v.SetDefault("classifier.conservative_mode", DefaultClassifier.ConservativeMode)
	v.SetDefault("classifier.max_replacement_len", DefaultClassifier.MaxReplacementLen)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with every default applied and no file read.
// Library consumers that embed the checker use this as a starting point.
func Default() *Config {
	return &Config{
		Language:       DefaultLanguage,
		MinTextRunes:   DefaultMinTextRunes,
		MinChangeRunes: DefaultMinChangeRunes,
		Engines:        DefaultEngines,
		Scheduler:      DefaultScheduler,
		Cache:          DefaultCache,
		Classifier:     DefaultClassifier,
		Output:         DefaultOutput,
	}
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
