package cleaner

import (
	"github.com/giantswarm/etcd-cleaner/internal/registry"
	"github.com/giantswarm/etcd-cleaner/internal/testing/mock"
)

const (
	testNamespace = "kube-system"
	etcdPod       = "etcd-server-ip-10-0-0-1"
)

var hostnameCmd = []string{"sh", "-c", "hostname"}

func lsCmd(prefix registry.Prefix) []string {
	return []string{"etcdctl", "ls", string(prefix)}
}

func rmCmd(key string) []string {
	return []string{"etcdctl", "rm", "--recursive", key}
}

// keys renders names as full keys under prefix, the way etcdctl ls prints them.
func keys(prefix registry.Prefix, names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(prefix) + n
	}
	return out
}

func testOptions(prefixes ...registry.Prefix) Options {
	opts := DefaultOptions()
	if len(prefixes) > 0 {
		opts.Prefixes = prefixes
	}
	return opts
}

func testLocator(agents ...string) *mock.Locator {
	pods := append([]string{
		etcdPod,
		"etcd-server-ip-10-0-0-2",
		"etcd-server-events-ip-10-0-0-1",
		"kube-dns-7f9c5",
	}, agents...)
	return &mock.Locator{Pods: map[string][]string{testNamespace: pods}}
}

