package cleaner

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/etcd-cleaner/internal/kube"
	"github.com/giantswarm/etcd-cleaner/internal/registry"
	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// etcdKeyNotFound is the etcd v2 error code 100 message.
const etcdKeyNotFound = "Key not found"

// RegistryListing is the registry content of every prefix, as read from
// one etcd pod.
type RegistryListing struct {
	Target   kube.PodTarget
	Listings []registry.Listing
}

// RegistryLister reads the node records under every prefix.
type RegistryLister struct {
	locator     kube.Locator
	exec        kube.RemoteExecutor
	namespace   string
	pattern     *regexp.Regexp
	container   string
	binary      string
	prefixes    []registry.Prefix
	concurrency int
}

// NewRegistryLister returns a RegistryLister configured from opts.
func NewRegistryLister(locator kube.Locator, exec kube.RemoteExecutor, opts Options) *RegistryLister {
	concurrency := opts.ListConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &RegistryLister{
		locator:     locator,
		exec:        exec,
		namespace:   opts.Namespace,
		pattern:     opts.StorePodPattern,
		container:   opts.StoreContainer,
		binary:      opts.StoreBinary,
		prefixes:    opts.Prefixes,
		concurrency: concurrency,
	}
}

// List selects the first matching etcd pod and lists every prefix through
// it. Listings come back in prefix order whatever the concurrency.
func (l *RegistryLister) List(ctx context.Context) (RegistryListing, error) {
	pods, err := l.locator.Locate(ctx, l.namespace, l.pattern)
	if err != nil {
		return RegistryListing{}, fatal("locate etcd pods", err)
	}
	target := kube.PodTarget{Namespace: l.namespace, Pod: pods[0], Container: l.container}
	logging.Debug("Registry", "using %s out of %d etcd pods", target, len(pods))

	listings := make([]registry.Listing, len(l.prefixes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, prefix := range l.prefixes {
		g.Go(func() error {
			set, err := l.listPrefix(gctx, target, prefix)
			if err != nil {
				return err
			}
			listings[i] = registry.Listing{Prefix: prefix, Records: set}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RegistryListing{}, fatal("list registry", err)
	}
	return RegistryListing{Target: target, Listings: listings}, nil
}

func (l *RegistryLister) listPrefix(ctx context.Context, target kube.PodTarget, prefix registry.Prefix) (registry.RegistrySet, error) {
	keys, err := l.exec.Exec(ctx, target, []string{l.binary, "ls", string(prefix)})
	if err != nil {
		if isKeyNotFound(err) {
			logging.Warn("Registry", "%s does not exist, treating as empty", prefix)
			return registry.NewRegistrySet(), nil
		}
		return registry.RegistrySet{}, err
	}

	names := make([]registry.NodeName, 0, len(keys))
	for _, key := range keys {
		name, ok := registry.SplitKey(prefix, strings.TrimSpace(key))
		if !ok {
			logging.Warn("Registry", "ignoring key %q outside %s", key, prefix)
			continue
		}
		names = append(names, name)
	}
	set := registry.NewRegistrySet(names...)
	logging.Info("Registry", "%s: %d nodes", prefix, set.Len())
	return set, nil
}

// isKeyNotFound reports whether err is an etcdctl failure caused by an
// absent key.
func isKeyNotFound(err error) bool {
	var execErr *kube.ExecError
	if !errors.As(err, &execErr) {
		return false
	}
	if strings.Contains(execErr.Output(), etcdKeyNotFound) {
		return true
	}
	return execErr.Err != nil && strings.Contains(execErr.Err.Error(), etcdKeyNotFound)
}
