package config

import (
	"regexp"
	"strings"

	"github.com/giantswarm/etcd-cleaner/internal/registry"
	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// Validate checks cfg and returns ValidationErrors listing every problem.
func Validate(cfg Config) error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Namespace) == "" {
		errs.Add("namespace", "is required")
	}
	validatePattern(&errs, "agent.podPattern", cfg.Agent.PodPattern)
	validatePattern(&errs, "store.podPattern", cfg.Store.PodPattern)

	if len(cfg.Agent.HostnameCommand) == 0 {
		errs.Add("agent.hostnameCommand", "must have at least one item")
	}
	if strings.TrimSpace(cfg.Store.Binary) == "" {
		errs.Add("store.binary", "is required")
	}

	if len(cfg.Prefixes) == 0 {
		errs.Add("prefixes", "must have at least one item")
	}
	seen := make(map[string]bool, len(cfg.Prefixes))
	for _, p := range cfg.Prefixes {
		if err := registry.Prefix(p).Validate(); err != nil {
			errs.Add("prefixes", err.Error(), p)
			continue
		}
		if seen[p] {
			errs.Add("prefixes", "duplicate prefix "+p, p)
		}
		seen[p] = true
	}

	if cfg.CommandTimeout <= 0 {
		errs.Add("commandTimeout", "must be positive", cfg.CommandTimeout)
	}
	if cfg.ListConcurrency < 1 {
		errs.Add("listConcurrency", "must be at least 1", cfg.ListConcurrency)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		errs.Add("logLevel", err.Error(), cfg.LogLevel)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validatePattern(errs *ValidationErrors, field, pattern string) {
	if pattern == "" {
		errs.Add(field, "is required")
		return
	}
	if _, err := regexp.Compile(pattern); err != nil {
		errs.Add(field, "is not a valid regular expression: "+err.Error(), pattern)
	}
}

// RegistryPrefixes returns the configured prefixes as registry.Prefix values.
func (c Config) RegistryPrefixes() []registry.Prefix {
	out := make([]registry.Prefix, len(c.Prefixes))
	for i, p := range c.Prefixes {
		out[i] = registry.Prefix(p)
	}
	return out
}
