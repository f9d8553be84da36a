// Package config resolves runtime settings from flags, SKILLROUTER_* environment
// variables and an optional config.yaml, and derives the rules document path.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillrouter/pkg/matcher"
)

// EnvPrefix prefixes every environment variable read by viper
const EnvPrefix = "SKILLROUTER"

// PluginRootEnv is set by the host to the root of the installed plugin
const PluginRootEnv = "CLAUDE_PLUGIN_ROOT"

// RulesFile is the rules document location relative to the plugin root
var RulesFile = filepath.Join("skills", "skill-rules.json")

// Config keys
const (
	KeyRulesPath      = "rules_path"
	KeyPluginRoot     = "plugin_root"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
	KeyPatternTimeout = "pattern_timeout"
	KeyQuiet          = "quiet"
)

// Config holds the settings of one skillrouter invocation
type Config struct {
	RulesPath      string        `mapstructure:"rules_path"`
	PluginRoot     string        `mapstructure:"plugin_root"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	PatternTimeout time.Duration `mapstructure:"pattern_timeout"`
	Quiet          bool          `mapstructure:"quiet"`
}

// executablePath is replaced in tests
var executablePath = os.Executable

// Init sets env handling, defaults and config file lookup on v, then reads the
// config file when one exists.
func Init(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	// keys must be known to viper for Unmarshal to see their env values
	v.SetDefault(KeyRulesPath, "")
	v.SetDefault(KeyPluginRoot, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyPatternTimeout, matcher.DefaultPatternTimeout)
	v.SetDefault(KeyQuiet, false)

	if err := v.BindEnv(KeyPluginRoot, PluginRootEnv, EnvPrefix+"_PLUGIN_ROOT"); err != nil {
		return errors.Wrap(err, "failed to bind plugin root environment")
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.skillrouter")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
	}
	return nil
}

// LoadConfig unmarshals v into a Config
func LoadConfig(v *viper.Viper) (Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to unmarshal configuration")
	}
	if config.PatternTimeout <= 0 {
		config.PatternTimeout = matcher.DefaultPatternTimeout
	}
	return config, nil
}

// FallbackConfig reads every key of v on its own, so a value that does not
// decode only loses itself instead of the whole Config. Use it when LoadConfig
// fails.
func FallbackConfig(v *viper.Viper) Config {
	config := Config{
		RulesPath:      v.GetString(KeyRulesPath),
		PluginRoot:     v.GetString(KeyPluginRoot),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		PatternTimeout: v.GetDuration(KeyPatternTimeout),
		Quiet:          v.GetBool(KeyQuiet),
	}
	if config.PatternTimeout <= 0 {
		config.PatternTimeout = matcher.DefaultPatternTimeout
	}
	return config
}

// GetConfigFromViper loads the Config from the global viper instance
func GetConfigFromViper() (Config, error) {
	return LoadConfig(viper.GetViper())
}

// ResolveRulesPath returns the rules document path. An explicit rules path
// wins; otherwise the document lives under the plugin root, which defaults to
// two levels above the directory holding the executable.
func (c Config) ResolveRulesPath() (string, error) {
	if c.RulesPath != "" {
		return c.RulesPath, nil
	}

	root := c.PluginRoot
	if root == "" {
		exe, err := executablePath()
		if err != nil {
			return "", errors.Wrap(err, "failed to locate executable")
		}
		root = filepath.Join(filepath.Dir(exe), "..", "..")
	}

	return filepath.Join(root, RulesFile), nil
}
