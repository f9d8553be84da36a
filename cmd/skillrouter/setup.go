package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillrouter/pkg/config"
	"github.com/jingkaihe/skillrouter/pkg/logger"
	"github.com/jingkaihe/skillrouter/pkg/matcher"
	"github.com/jingkaihe/skillrouter/pkg/presenter"
	"github.com/jingkaihe/skillrouter/pkg/router"
	"github.com/jingkaihe/skillrouter/pkg/rules"
)

// loadConfig reads the configuration from flags, environment and config file.
// A value that does not decode falls back to its default; the other keys are
// kept.
func loadConfig(ctx context.Context) config.Config {
	cfg, err := config.GetConfigFromViper()
	if err != nil {
		logger.G(ctx).WithError(err).Warn("invalid configuration value, using its default")
		return config.FallbackConfig(viper.GetViper())
	}
	return cfg
}

// newPresenter returns a presenter on the command's writers honoring --quiet
func newPresenter(cmd *cobra.Command) *presenter.TerminalPresenter {
	p := presenter.NewForWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
	p.SetQuiet(viper.GetBool(config.KeyQuiet))
	return p
}

// configuredPluginRoot returns the plugin root from flags, environment or
// config file, "" when none is set
func configuredPluginRoot() string {
	return viper.GetString(config.KeyPluginRoot)
}

// rulesPath resolves the rules document path
func rulesPath(ctx context.Context) (string, error) {
	return loadConfig(ctx).ResolveRulesPath()
}

// loadRules loads the configured rules document
func loadRules(ctx context.Context) (rules.RuleSet, error) {
	path, err := rulesPath(ctx)
	if err != nil {
		return rules.RuleSet{}, err
	}
	set := rules.Load(path)
	if !set.Available() {
		return set, set.Err()
	}
	return set, nil
}

// newRouter builds a router from the current configuration. Configuration
// problems leave the router without skill rules; intents still work.
func newRouter(ctx context.Context) *router.Router {
	log := logger.G(ctx)
	cfg := loadConfig(ctx)

	opts := []matcher.Option{matcher.WithPatternTimeout(cfg.PatternTimeout)}
	if path, err := cfg.ResolveRulesPath(); err != nil {
		log.WithError(err).Warn("failed to resolve skill rules path")
	} else {
		log.WithField("rules", path).Debug("loading skill rules")
		opts = append(opts, matcher.WithRulesPath(path))
	}

	m, err := matcher.New(opts...)
	if err != nil {
		log.WithError(err).Warn("failed to create matcher, skill rules disabled")
		m, _ = matcher.New()
	}
	if set := m.RuleSet(); !set.Available() {
		log.WithError(set.Err()).Debug("skill rules unavailable")
	}

	rt, err := router.New(router.WithMatcher(m))
	if err != nil {
		log.WithError(errors.Wrap(err, "failed to create router")).Warn("falling back to intents only")
		rt, _ = router.New()
	}
	return rt
}
