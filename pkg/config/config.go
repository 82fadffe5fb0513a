/*
Package config manages TOML config for TrickSense surfaces: display limits,
analytics defaults, the alias table, and the summarizer lexicon. Builtin
defaults always apply first; a config file only overrides what it names.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/skatelog/tricksense/internal/utils"
	"github.com/skatelog/tricksense/pkg/resolve"
	"github.com/skatelog/tricksense/pkg/summary"
	"github.com/skatelog/tricksense/pkg/tokenize"
)

// Config holds the entire config structure.
type Config struct {
	CLI       CliConfig         `toml:"cli"`
	Analytics AnalyticsConfig   `toml:"analytics"`
	Aliases   map[string]string `toml:"aliases"`
	Lexicon   LexiconConfig     `toml:"lexicon"`
}

// CliConfig holds interactive interface options.
type CliConfig struct {
	DefaultLimit  int `toml:"default_limit"`
	CompleteLimit int `toml:"complete_limit"`
}

// AnalyticsConfig holds streak and heat-map options.
type AnalyticsConfig struct {
	HeatmapWindowDays int `toml:"heatmap_window_days"`
}

// LexiconConfig holds the summarizer weight tables.
type LexiconConfig struct {
	Achievement    []string           `toml:"achievement"`
	Emotion        []string           `toml:"emotion"`
	Colloquial     map[string]float64 `toml:"colloquial"`
	OpeningPhrases []string           `toml:"opening_phrases"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	lex := summary.DefaultLexicon()
	return &Config{
		CLI: CliConfig{
			DefaultLimit:  5,
			CompleteLimit: 5,
		},
		Analytics: AnalyticsConfig{
			HeatmapWindowDays: 7,
		},
		Aliases: map[string]string{
			"bs flip":     "BS 180 Kickflip",
			"fs flip":     "FS 180 Kickflip",
			"back flip":   "BS 180 Kickflip",
			"shuv":        "Pop Shove It",
			"shove it":    "Pop Shove It",
			"varial flip": "Varial Kickflip",
			"50 50":       "50-50 Grind",
			"rail slide":  "Boardslide",
		},
		Lexicon: LexiconConfig{
			Achievement:    lex.Achievement,
			Emotion:        lex.Emotion,
			Colloquial:     lex.Colloquial,
			OpeningPhrases: lex.OpeningPhrases,
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tricksense", "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/tricksense/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates a default one if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, layered over builtin defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(cfg)
}

// AliasTable converts the configured alias map into the resolver's form,
// normalizing phrase keys so lookups line up with tokenized input.
func (c *Config) AliasTable() resolve.AliasTable {
	table := make(resolve.AliasTable, len(c.Aliases))
	for phrase, canonical := range c.Aliases {
		key := tokenize.NormalizeText(phrase)
		if key == "" {
			continue
		}
		table[key] = canonical
	}
	return table
}

// LexiconTables converts the configured lexicon into the summarizer's form.
func (c *Config) LexiconTables() summary.Lexicon {
	return summary.Lexicon{
		Achievement:    c.Lexicon.Achievement,
		Emotion:        c.Lexicon.Emotion,
		Colloquial:     c.Lexicon.Colloquial,
		OpeningPhrases: c.Lexicon.OpeningPhrases,
	}
}
