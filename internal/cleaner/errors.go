package cleaner

import (
	"context"
	"errors"
	"fmt"

	"github.com/giantswarm/etcd-cleaner/internal/kube"
	"github.com/giantswarm/etcd-cleaner/internal/registry"
)

// Kind classifies a fatal condition.
type Kind string

const (
	// KindConnectivity means the Kubernetes API could not be used.
	KindConnectivity Kind = "connectivity"
	// KindNoMatch means an expected agent or etcd pod does not exist.
	KindNoMatch Kind = "no-match"
	// KindConsistency means the listings contradict each other.
	KindConsistency Kind = "consistency"
	// KindRemoteCommand means a command inside a pod failed.
	KindRemoteCommand Kind = "remote-command"
)

// FatalError ends a pass. Op names the stage that failed.
type FatalError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// fatal wraps err in a *FatalError classified by its concrete type. An err
// that already is a *FatalError is returned unchanged.
func fatal(op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FatalError
	if errors.As(err, &fe) {
		return err
	}

	var (
		apiErr      *kube.APIError
		noMatch     *kube.NoMatchError
		execErr     *kube.ExecError
		consistency *registry.ConsistencyError
	)
	kind := KindRemoteCommand
	switch {
	case errors.As(err, &noMatch):
		kind = KindNoMatch
	case errors.As(err, &consistency):
		kind = KindConsistency
	case errors.As(err, &apiErr):
		kind = KindConnectivity
	case errors.As(err, &execErr), errors.Is(err, context.DeadlineExceeded):
		kind = KindRemoteCommand
	}
	return &FatalError{Kind: kind, Op: op, Err: err}
}
