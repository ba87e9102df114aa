// Package config provides configuration loading and defaults for prosecheck.
package config

// DefaultConfigDir is the default location for prosecheck configuration.
const DefaultConfigDir = "~/.config/prosecheck"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "prosecheck.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultLanguage is the locale used by dictionary-backed engines.
const DefaultLanguage = "en-US"

// DefaultMinTextRunes is the minimum normalized text length worth analyzing.
// Anything shorter short-circuits to an empty result.
const DefaultMinTextRunes = 3

// DefaultMinChangeRunes is the minimum size delta between content-change
// events required to arm the debounce timer.
const DefaultMinChangeRunes = 3

// DefaultEngines holds the default engine toggles. The langproc engine is
// off by default because it needs an external endpoint.
var DefaultEngines = Engines{
	Rules:       true,
	Dictionary:  true,
	Fuzzy:       true,
	Style:       true,
	Langproc:    false,
	LangprocURL: "",
	Failover:    true,
}

// DefaultScheduler holds the default debounce and concurrency settings.
var DefaultScheduler = Scheduler{
	DebounceMs:          400,
	MaxConcurrentChecks: 2,
	AdapterTimeoutMs:    2000,
	GlobalTimeoutMs:     5000,
}

// DefaultCache holds the default result-cache settings.
var DefaultCache = Cache{
	TTLMs:               5 * 60 * 1000,
	Capacity:            200,
	SimilarityThreshold: 0.85,
	LengthTolerance:     0.20,
	ProbeDepth:          16,
}

// DefaultClassifier holds the default suggestion-classification thresholds.
// These are empirically tuned defaults, not hard requirements; override them
// in the config file when validating against a labeled corpus.
var DefaultClassifier = Classifier{
	AutoThreshold:     0.85,
	SemiThreshold:     0.65,
	MinSafety:         0.80,
	MaxComplexity:     0.30,
	ConservativeAuto:  0.92,
	ConservativeSemi:  0.75,
	ConservativeMode:  false,
	MaxReplacementLen: 50,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
