package cleaner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/giantswarm/etcd-cleaner/internal/kube"
	"github.com/giantswarm/etcd-cleaner/internal/registry"
	"github.com/giantswarm/etcd-cleaner/pkg/logging"
	strs "github.com/giantswarm/etcd-cleaner/pkg/strings"
)

// DeleteOutcome is the result of deleting one candidate.
type DeleteOutcome struct {
	Candidate     registry.RemovalCandidate
	Key           registry.Key
	Command       []string
	Output        []string
	AlreadyAbsent bool
	Err           error
}

// ApplyResult collects the outcome of every attempted delete, in plan order.
type ApplyResult struct {
	Outcomes []DeleteOutcome
}

// Deleted returns how many candidates are gone after the pass, including
// those that were already absent.
func (r ApplyResult) Deleted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Err joins every failed delete into one *FatalError, or returns nil.
func (r ApplyResult) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Key, o.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &FatalError{
		Kind: KindRemoteCommand,
		Op:   fmt.Sprintf("apply %d of %d deletes failed", len(errs), len(r.Outcomes)),
		Err:  errors.Join(errs...),
	}
}

// Applier deletes removal candidates through one etcd pod.
type Applier struct {
	exec   kube.RemoteExecutor
	binary string
	out    io.Writer
}

// NewApplier returns an Applier that echoes each invocation and its output
// to out.
func NewApplier(exec kube.RemoteExecutor, binary string, out io.Writer) *Applier {
	if out == nil {
		out = io.Discard
	}
	return &Applier{exec: exec, binary: binary, out: out}
}

// Apply deletes every candidate of plan in order. A failure is recorded and
// the next candidate is still attempted. A candidate whose key cannot be
// built is recorded as failed without issuing a command.
func (a *Applier) Apply(ctx context.Context, target kube.PodTarget, plan registry.Plan) ApplyResult {
	var result ApplyResult
	for _, c := range plan.Candidates {
		result.Outcomes = append(result.Outcomes, a.delete(ctx, target, c))
	}
	logging.Info("Applier", "%d of %d candidates removed", result.Deleted(), len(result.Outcomes))
	return result
}

func (a *Applier) delete(ctx context.Context, target kube.PodTarget, c registry.RemovalCandidate) DeleteOutcome {
	outcome := DeleteOutcome{Candidate: c}

	key, err := c.Key()
	if err != nil {
		outcome.Err = err
		logging.Error("Applier", err, "refusing to delete %s", c)
		return outcome
	}
	outcome.Key = key
	outcome.Command = []string{a.binary, "rm", "--recursive", string(key)}

	fmt.Fprintf(a.out, "\n%s: %s\n", target.Pod, strings.Join(outcome.Command, " "))
	lines, err := a.exec.Exec(ctx, target, outcome.Command)
	switch {
	case err == nil:
		outcome.Output = lines
	case isKeyNotFound(err):
		outcome.AlreadyAbsent = true
		outcome.Output = execOutput(err)
		logging.Info("Applier", "%s already absent", key)
	default:
		outcome.Err = err
		outcome.Output = execOutput(err)
		logging.Error("Applier", err, "delete of %s failed", key)
	}
	for _, line := range outcome.Output {
		fmt.Fprintln(a.out, line)
	}
	return outcome
}

func execOutput(err error) []string {
	var execErr *kube.ExecError
	if !errors.As(err, &execErr) {
		return nil
	}
	return strs.SplitLines(execErr.Output())
}
