package mock

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/giantswarm/etcd-cleaner/internal/kube"
)

// Call is one recorded Exec invocation.
type Call struct {
	Target  kube.PodTarget
	Command []string
}

// Line renders the call the way an operator would type it.
func (c Call) Line() string {
	return c.Target.Pod + ": " + strings.Join(c.Command, " ")
}

type response struct {
	lines []string
	err   error
}

// Executor is a scripted kube.RemoteExecutor.
type Executor struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []Call
}

// NewExecutor returns an Executor with an empty script.
func NewExecutor() *Executor {
	return &Executor{responses: make(map[string]response)}
}

func scriptKey(pod string, command []string) string {
	return pod + "\x00" + strings.Join(command, "\x00")
}

// On scripts the output of command in pod.
func (e *Executor) On(pod string, command []string, lines ...string) *Executor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses[scriptKey(pod, command)] = response{lines: lines}
	return e
}

// Fail scripts command in pod to return err.
func (e *Executor) Fail(pod string, command []string, err error) *Executor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses[scriptKey(pod, command)] = response{err: err}
	return e
}

// Exec implements kube.RemoteExecutor. Unscripted commands fail with an
// *kube.ExecError.
func (e *Executor) Exec(ctx context.Context, target kube.PodTarget, command []string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Target: target, Command: append([]string(nil), command...)})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := e.responses[scriptKey(target.Pod, command)]
	if !ok {
		return nil, &kube.ExecError{Target: target, Command: command, Err: errors.New("unscripted command")}
	}
	return append([]string(nil), r.lines...), r.err
}

// Calls returns the recorded calls in order.
func (e *Executor) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// CallsMatching returns the recorded calls whose command starts with prefix.
func (e *Executor) CallsMatching(prefix ...string) []Call {
	var out []Call
	for _, c := range e.Calls() {
		if len(c.Command) < len(prefix) {
			continue
		}
		match := true
		for i, p := range prefix {
			if c.Command[i] != p {
				match = false
				break
			}
		}
		if match {
			out = append(out, c)
		}
	}
	return out
}

// Locator is a kube.Locator over a fixed pod inventory.
type Locator struct {
	// Pods maps namespace to pod names.
	Pods map[string][]string
	// Err, when set, is returned by every Locate call.
	Err error
}

// Locate implements kube.Locator.
func (l *Locator) Locate(_ context.Context, namespace string, pattern *regexp.Regexp) ([]string, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	var names []string
	for _, p := range l.Pods[namespace] {
		if pattern.MatchString(p) {
			names = append(names, p)
		}
	}
	if len(names) == 0 {
		return nil, &kube.NoMatchError{Namespace: namespace, Pattern: pattern.String()}
	}
	sort.Strings(names)
	return names, nil
}
