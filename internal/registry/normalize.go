package registry

import (
	"regexp"
	"strings"

	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// DefaultDNSDomain is the EC2 private DNS suffix used by the cluster nodes.
const DefaultDNSDomain = "ap-northeast-1.compute.internal"

const (
	addressDelimiter = "x"
	dnsSeparator     = "-"
	dnsHostPrefix    = "ip-"
)

// embeddedAddress matches four numeric octets joined by addressDelimiter.
var embeddedAddress = regexp.MustCompile(`\d+x\d+x\d+x\d+`)

// Normalizer derives the canonical DNS name of a node from its hostname.
type Normalizer struct {
	domain string
}

// NewNormalizer returns a Normalizer for domain. An empty domain selects
// DefaultDNSDomain.
func NewNormalizer(domain string) *Normalizer {
	domain = strings.Trim(domain, ".")
	if domain == "" {
		domain = DefaultDNSDomain
	}
	return &Normalizer{domain: domain}
}

// Domain returns the DNS suffix appended to canonical names.
func (n *Normalizer) Domain() string {
	return n.domain
}

// Canonicalize returns the DNS form of name when it embeds an address such as
// "10x0x1x5". The first match wins. It returns false, and logs, when the name
// carries no address.
func (n *Normalizer) Canonicalize(name NodeName) (NodeName, bool) {
	ip := embeddedAddress.FindString(string(name))
	if ip == "" {
		logging.Warn("Normalizer", "%s does not match %s, no canonical name", name, embeddedAddress)
		return "", false
	}
	ip = strings.ReplaceAll(ip, addressDelimiter, dnsSeparator)
	return NodeName(dnsHostPrefix + ip + "." + n.domain), true
}
