package registry

import (
	"fmt"

	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// ConsistencyError reports a live node without a record under a prefix. Its
// presence means the registry listing cannot be trusted for deletions.
type ConsistencyError struct {
	Prefix Prefix
	Node   NodeName
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("live node %s is not registered in %s", e.Node, e.Prefix)
}

// Engine computes removal plans.
type Engine struct {
	normalizer *Normalizer
}

// NewEngine returns an Engine that uses normalizer for the ambiguity check.
func NewEngine(normalizer *Normalizer) *Engine {
	if normalizer == nil {
		normalizer = NewNormalizer("")
	}
	return &Engine{normalizer: normalizer}
}

// Reconcile checks every listing against membership and returns the plan.
// Listings are processed in the order given. On a consistency failure no
// plan is returned.
func (e *Engine) Reconcile(membership MembershipSet, listings []Listing) (Plan, error) {
	members := membership.Sorted()

	// Barrier: every prefix must know every member before any candidate exists.
	for _, l := range listings {
		for _, m := range members {
			if !l.Records.Has(m) {
				err := &ConsistencyError{Prefix: l.Prefix, Node: m}
				logging.Error("Engine", err, "aborting reconciliation")
				return Plan{}, err
			}
		}
	}

	var plan Plan
	for _, l := range listings {
		for _, m := range members {
			canonical, ok := e.normalizer.Canonicalize(m)
			if !ok || canonical == m {
				continue
			}
			if l.Records.Has(canonical) {
				alert := Alert{Prefix: l.Prefix, Raw: m, Canonical: canonical}
				logging.Warn("Engine", "%s", alert)
				plan.Alerts = append(plan.Alerts, alert)
			}
		}

		for _, name := range l.Records.Sorted() {
			if membership.Has(name) {
				continue
			}
			plan.Candidates = append(plan.Candidates, RemovalCandidate{Prefix: l.Prefix, Name: name})
		}
		logging.Debug("Engine", "%s: %d records, %d stale", l.Prefix, l.Records.Len(), len(plan.ForPrefix(l.Prefix)))
	}
	return plan, nil
}
