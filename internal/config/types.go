package config

import "time"

// Config is the top-level configuration structure for etcd-cleaner.
type Config struct {
	Namespace       string        `yaml:"namespace"`
	Agent           AgentConfig   `yaml:"agent"`
	Store           StoreConfig   `yaml:"store"`
	Prefixes        []string      `yaml:"prefixes"`
	DNSDomain       string        `yaml:"dnsDomain"`
	CommandTimeout  time.Duration `yaml:"commandTimeout"`
	ListConcurrency int           `yaml:"listConcurrency"`
	LogLevel        string        `yaml:"logLevel"`
}

// AgentConfig selects the overlay-network agent pods that report membership.
type AgentConfig struct {
	PodPattern      string   `yaml:"podPattern"`
	Container       string   `yaml:"container"`
	HostnameCommand []string `yaml:"hostnameCommand"`
}

// StoreConfig selects the etcd server pods that hold the registry.
type StoreConfig struct {
	PodPattern string `yaml:"podPattern"`
	Container  string `yaml:"container,omitempty"` // empty selects the pod's default container
	Binary     string `yaml:"binary"`
}
