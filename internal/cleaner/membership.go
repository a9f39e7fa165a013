package cleaner

import (
	"context"
	"errors"
	"regexp"

	"github.com/giantswarm/etcd-cleaner/internal/kube"
	"github.com/giantswarm/etcd-cleaner/internal/registry"
	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// Membership is the cluster's live node list together with the agent pods
// that reported it.
type Membership struct {
	Pods  []string
	Nodes registry.MembershipSet
}

// MembershipLister asks every overlay agent for its node's hostname.
type MembershipLister struct {
	locator   kube.Locator
	exec      kube.RemoteExecutor
	namespace string
	pattern   *regexp.Regexp
	container string
	command   []string
}

// NewMembershipLister returns a MembershipLister configured from opts.
func NewMembershipLister(locator kube.Locator, exec kube.RemoteExecutor, opts Options) *MembershipLister {
	return &MembershipLister{
		locator:   locator,
		exec:      exec,
		namespace: opts.Namespace,
		pattern:   opts.AgentPodPattern,
		container: opts.AgentContainer,
		command:   opts.HostnameCommand,
	}
}

// List returns the current membership. It fails when no agent pod exists or
// when the agents report no hostname at all.
func (l *MembershipLister) List(ctx context.Context) (Membership, error) {
	pods, err := l.locator.Locate(ctx, l.namespace, l.pattern)
	if err != nil {
		return Membership{}, fatal("locate agent pods", err)
	}

	var names []registry.NodeName
	for _, pod := range pods {
		target := kube.PodTarget{Namespace: l.namespace, Pod: pod, Container: l.container}
		lines, err := l.exec.Exec(ctx, target, l.command)
		if err != nil {
			return Membership{}, fatal("list membership", err)
		}
		for _, line := range lines {
			names = append(names, registry.NodeName(line))
		}
	}
	if len(names) == 0 {
		return Membership{}, &FatalError{
			Kind: KindConsistency,
			Op:   "list membership",
			Err:  errors.New("agent pods reported no hostnames"),
		}
	}

	set := registry.NewMembershipSet(names...)
	logging.Info("Membership", "%d agent pods report %d nodes", len(pods), set.Len())
	return Membership{Pods: pods, Nodes: set}, nil
}
