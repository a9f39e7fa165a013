package registry

import (
	"fmt"
	"sort"
	"strings"
)

// NodeName identifies a node either in hostname form (as reported by the
// agent) or in canonical DNS form (as sometimes found in etcd).
type NodeName string

// Prefix is a slash-terminated etcd key-space path holding one record per node.
type Prefix string

// Default key-space prefixes maintained by Calico.
const (
	PrefixHost Prefix = "/calico/v1/host/"
	PrefixBGP  Prefix = "/calico/bgp/v1/host/"
	PrefixIPAM Prefix = "/calico/ipam/v2/host/"
)

// DefaultPrefixes returns the Calico key spaces in reconciliation order.
func DefaultPrefixes() []Prefix {
	return []Prefix{PrefixHost, PrefixBGP, PrefixIPAM}
}

// Validate reports whether p can be used to build keys.
func (p Prefix) Validate() error {
	s := string(p)
	if !strings.HasPrefix(s, "/") || !strings.HasSuffix(s, "/") {
		return fmt.Errorf("prefix %q must start and end with '/'", s)
	}
	if strings.Contains(s, "//") {
		return fmt.Errorf("prefix %q contains an empty path segment", s)
	}
	return nil
}

// Key is a full etcd key built from a Prefix and a NodeName.
type Key string

// JoinKey builds the key for name under prefix. The name must be a single
// non-empty path segment so that a key can only ever belong to one prefix.
func JoinKey(prefix Prefix, name NodeName) (Key, error) {
	if err := prefix.Validate(); err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("empty node name under %s", prefix)
	}
	if strings.Contains(string(name), "/") {
		return "", fmt.Errorf("node name %q under %s is not a single path segment", name, prefix)
	}
	return Key(string(prefix) + string(name)), nil
}

// SplitKey is the inverse of JoinKey. It reports false when key does not lie
// directly beneath prefix.
func SplitKey(prefix Prefix, key string) (NodeName, bool) {
	rest, ok := strings.CutPrefix(key, string(prefix))
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return NodeName(rest), true
}

// nameSet is an immutable set of node names.
type nameSet struct {
	m map[NodeName]struct{}
}

func newNameSet(names []NodeName) nameSet {
	m := make(map[NodeName]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return nameSet{m: m}
}

// Has reports whether name is in the set.
func (s nameSet) Has(name NodeName) bool {
	_, ok := s.m[name]
	return ok
}

// Len returns the number of distinct names.
func (s nameSet) Len() int {
	return len(s.m)
}

// Sorted returns the names in lexical order.
func (s nameSet) Sorted() []NodeName {
	out := make([]NodeName, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MembershipSet is the set of nodes reported live by the orchestrator.
type MembershipSet struct{ nameSet }

// NewMembershipSet builds a MembershipSet; duplicates collapse.
func NewMembershipSet(names ...NodeName) MembershipSet {
	return MembershipSet{newNameSet(names)}
}

// RegistrySet is the set of node names recorded under one prefix.
type RegistrySet struct{ nameSet }

// NewRegistrySet builds a RegistrySet; duplicates collapse.
func NewRegistrySet(names ...NodeName) RegistrySet {
	return RegistrySet{newNameSet(names)}
}

// Listing is the registry content found under one prefix.
type Listing struct {
	Prefix  Prefix
	Records RegistrySet
}

// RemovalCandidate is a registry record with no live node behind it.
type RemovalCandidate struct {
	Prefix Prefix
	Name   NodeName
}

// Key returns the etcd key to delete.
func (c RemovalCandidate) Key() (Key, error) {
	return JoinKey(c.Prefix, c.Name)
}

func (c RemovalCandidate) String() string {
	return string(c.Prefix) + string(c.Name)
}

// Alert flags a live node whose canonical name is also registered, which
// hints at a duplicate record rather than a stale one.
type Alert struct {
	Prefix    Prefix
	Raw       NodeName
	Canonical NodeName
}

func (a Alert) String() string {
	return fmt.Sprintf("%s is live but %s is also registered in %s", a.Raw, a.Canonical, a.Prefix)
}

// Plan is the outcome of one reconciliation pass.
type Plan struct {
	Candidates []RemovalCandidate
	Alerts     []Alert
}

// Empty reports whether the plan deletes nothing.
func (p Plan) Empty() bool {
	return len(p.Candidates) == 0
}

// ForPrefix returns the candidates owned by prefix, in plan order.
func (p Plan) ForPrefix(prefix Prefix) []RemovalCandidate {
	var out []RemovalCandidate
	for _, c := range p.Candidates {
		if c.Prefix == prefix {
			out = append(out, c)
		}
	}
	return out
}
