package kube

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// PodTarget addresses a container inside a pod. An empty Container selects
// the pod's default container.
type PodTarget struct {
	Namespace string
	Pod       string
	Container string
}

func (t PodTarget) String() string {
	if t.Container == "" {
		return t.Namespace + "/" + t.Pod
	}
	return t.Namespace + "/" + t.Pod + "/" + t.Container
}

// RemoteExecutor runs a command inside a pod and returns its output lines.
type RemoteExecutor interface {
	Exec(ctx context.Context, target PodTarget, command []string) ([]string, error)
}

// Locator finds pods by name pattern.
type Locator interface {
	Locate(ctx context.Context, namespace string, pattern *regexp.Regexp) ([]string, error)
}

// APIError wraps a failed call to the Kubernetes API.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kubernetes API %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NoMatchError is returned by Locate when no pod name matches.
type NoMatchError struct {
	Namespace string
	Pattern   string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("/%s/ no pattern matched pods in namespace %s", e.Pattern, e.Namespace)
}

// ExecError reports a command that could not be run or exited unsuccessfully.
type ExecError struct {
	Target  PodTarget
	Command []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("exec %q in %s: %v", strings.Join(e.Command, " "), e.Target, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Output returns everything the command wrote, stdout first.
func (e *ExecError) Output() string {
	return e.Stdout + e.Stderr
}
