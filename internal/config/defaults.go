package config

import (
	"time"

	"github.com/giantswarm/etcd-cleaner/internal/registry"
)

const (
	DefaultNamespace       = "kube-system"
	DefaultAgentPodPattern = `^calico-node-[a-zA-Z0-9]{5}$`
	DefaultAgentContainer  = "calico-node"
	DefaultStorePodPattern = `^etcd-server-ip.*`
	DefaultStoreBinary     = "etcdctl"
	DefaultCommandTimeout  = 30 * time.Second
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	prefixes := make([]string, 0, 3)
	for _, p := range registry.DefaultPrefixes() {
		prefixes = append(prefixes, string(p))
	}
	return Config{
		Namespace: DefaultNamespace,
		Agent: AgentConfig{
			PodPattern:      DefaultAgentPodPattern,
			Container:       DefaultAgentContainer,
			HostnameCommand: []string{"sh", "-c", "hostname"},
		},
		Store: StoreConfig{
			PodPattern: DefaultStorePodPattern,
			Binary:     DefaultStoreBinary,
		},
		Prefixes:        prefixes,
		DNSDomain:       registry.DefaultDNSDomain,
		CommandTimeout:  DefaultCommandTimeout,
		ListConcurrency: 1,
		LogLevel:        "info",
	}
}
