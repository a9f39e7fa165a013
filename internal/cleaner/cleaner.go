package cleaner

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/giantswarm/etcd-cleaner/internal/kube"
	"github.com/giantswarm/etcd-cleaner/internal/registry"
	"github.com/giantswarm/etcd-cleaner/pkg/logging"
)

// Mode selects whether a pass mutates the registry.
type Mode int

const (
	ModeDryRun Mode = iota
	ModeApply
)

// ApplyToken is the only argument that selects ModeApply.
const ApplyToken = "apply"

// ParseMode maps the optional positional argument to a Mode.
func ParseMode(args []string) Mode {
	if len(args) > 0 && args[0] == ApplyToken {
		return ModeApply
	}
	return ModeDryRun
}

func (m Mode) String() string {
	if m == ModeApply {
		return "apply"
	}
	return "dry-run"
}

// Progress is told which stage a pass is in. It is stopped before anything
// is written to the report output.
type Progress interface {
	Start(stage string)
	Stop()
}

type noProgress struct{}

func (noProgress) Start(string) {}
func (noProgress) Stop()        {}

// Result is everything one pass computed.
type Result struct {
	RunID      string
	Mode       Mode
	Membership Membership
	Registry   RegistryListing
	Plan       registry.Plan
	Apply      *ApplyResult
}

// Cleaner wires the stages of a pass together.
type Cleaner struct {
	membership *MembershipLister
	registry   *RegistryLister
	engine     *registry.Engine
	applier    *Applier
	out        io.Writer
	progress   Progress
}

// New returns a Cleaner writing its report to out. progress may be nil.
func New(opts Options, locator kube.Locator, exec kube.RemoteExecutor, out io.Writer, progress Progress) *Cleaner {
	if out == nil {
		out = io.Discard
	}
	if progress == nil {
		progress = noProgress{}
	}
	return &Cleaner{
		membership: NewMembershipLister(locator, exec, opts),
		registry:   NewRegistryLister(locator, exec, opts),
		engine:     registry.NewEngine(registry.NewNormalizer(opts.DNSDomain)),
		applier:    NewApplier(exec, opts.StoreBinary, out),
		out:        out,
		progress:   progress,
	}
}

// Run performs one pass. In ModeDryRun nothing is deleted. The returned
// Result is non-nil whenever a plan was computed, even if applying it failed.
func (c *Cleaner) Run(ctx context.Context, mode Mode) (*Result, error) {
	result := &Result{RunID: uuid.NewString(), Mode: mode}
	log := logging.With("Cleaner", "run", result.RunID, "mode", mode.String())
	log.Info("pass started")

	c.progress.Start("Listing cluster membership")
	membership, err := c.membership.List(ctx)
	if err != nil {
		c.progress.Stop()
		return nil, err
	}
	result.Membership = membership

	c.progress.Start("Listing etcd registry")
	listing, err := c.registry.List(ctx)
	if err != nil {
		c.progress.Stop()
		return nil, err
	}
	result.Registry = listing
	c.progress.Stop()

	plan, err := c.engine.Reconcile(membership.Nodes, listing.Listings)
	if err != nil {
		return nil, fatal("reconcile", err)
	}
	result.Plan = plan

	WriteReport(c.out, result)
	log.Info("plan computed", "candidates", len(plan.Candidates), "alerts", len(plan.Alerts))

	if mode != ModeApply {
		return result, nil
	}

	applied := c.applier.Apply(ctx, listing.Target, plan)
	result.Apply = &applied
	WriteApplySummary(c.out, applied)
	if err := applied.Err(); err != nil {
		return result, err
	}
	log.Info("pass finished", "removed", applied.Deleted())
	return result, nil
}
