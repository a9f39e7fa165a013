// Package registry implements the reconciliation between live cluster
// membership and the per-host records Calico keeps in etcd.
//
// # Model
//
// A MembershipSet holds the hostnames reported by the calico-node agents. A
// Listing pairs one key-space Prefix with the RegistrySet of node names found
// beneath it. The Engine folds both into a Plan: the RemovalCandidate values
// that are safe to delete plus advisory Alert values for names that appear to
// be registered under two conventions.
//
// # Reconciliation rules
//
// For every prefix, independently:
//
//  1. Every member must be registered. A missing member makes the whole pass
//     fail with a *ConsistencyError and no plan is returned for any prefix.
//  2. A member whose canonical DNS form is also registered raises an Alert.
//     Alerts never change the plan.
//  3. Candidates are the registry set minus the membership set, compared on
//     raw names.
//
// Plans are deterministic: candidates follow prefix order, then name order,
// so two passes over the same inputs produce identical output.
package registry
