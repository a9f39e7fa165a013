package cleaner

import (
	"fmt"
	"regexp"

	"github.com/giantswarm/etcd-cleaner/internal/config"
	"github.com/giantswarm/etcd-cleaner/internal/registry"
)

// Options fixes where a pass looks and what it runs.
type Options struct {
	Namespace string

	AgentPodPattern *regexp.Regexp
	AgentContainer  string
	HostnameCommand []string

	StorePodPattern *regexp.Regexp
	StoreContainer  string
	StoreBinary     string

	Prefixes        []registry.Prefix
	DNSDomain       string
	ListConcurrency int
}

// OptionsFromConfig converts a validated configuration into Options.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	agent, err := regexp.Compile(cfg.Agent.PodPattern)
	if err != nil {
		return Options{}, fmt.Errorf("agent pod pattern: %w", err)
	}
	store, err := regexp.Compile(cfg.Store.PodPattern)
	if err != nil {
		return Options{}, fmt.Errorf("store pod pattern: %w", err)
	}
	return Options{
		Namespace:       cfg.Namespace,
		AgentPodPattern: agent,
		AgentContainer:  cfg.Agent.Container,
		HostnameCommand: cfg.Agent.HostnameCommand,
		StorePodPattern: store,
		StoreContainer:  cfg.Store.Container,
		StoreBinary:     cfg.Store.Binary,
		Prefixes:        cfg.RegistryPrefixes(),
		DNSDomain:       cfg.DNSDomain,
		ListConcurrency: cfg.ListConcurrency,
	}, nil
}

// DefaultOptions returns the Options for the default configuration.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return opts
}
