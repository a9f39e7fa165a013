package kube

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/httpstream"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"

	"github.com/giantswarm/etcd-cleaner/pkg/logging"
	strs "github.com/giantswarm/etcd-cleaner/pkg/strings"
)

// DefaultCommandTimeout bounds a single remote command.
const DefaultCommandTimeout = 30 * time.Second

// ExecutorFactory opens a streaming executor for an exec subresource URL.
type ExecutorFactory func(config *rest.Config, method string, u *url.URL) (remotecommand.Executor, error)

// PodExecutor runs commands in pods through the exec subresource.
type PodExecutor struct {
	pods        corev1client.PodsGetter
	rest        rest.Interface
	config      *rest.Config
	timeout     time.Duration
	newExecutor ExecutorFactory
}

// NewPodExecutor returns a PodExecutor. A non-positive timeout selects
// DefaultCommandTimeout.
func NewPodExecutor(clientset kubernetes.Interface, config *rest.Config, timeout time.Duration) *PodExecutor {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &PodExecutor{
		pods:        clientset.CoreV1(),
		rest:        clientset.CoreV1().RESTClient(),
		config:      config,
		timeout:     timeout,
		newExecutor: newFallbackExecutor,
	}
}

// newFallbackExecutor prefers the WebSocket protocol and falls back to SPDY
// for API servers that refuse the upgrade, as kubectl does.
func newFallbackExecutor(config *rest.Config, method string, u *url.URL) (remotecommand.Executor, error) {
	spdy, err := remotecommand.NewSPDYExecutor(config, method, u)
	if err != nil {
		return nil, err
	}
	ws, err := remotecommand.NewWebSocketExecutor(config, http.MethodGet, u.String())
	if err != nil {
		return nil, err
	}
	return remotecommand.NewFallbackExecutor(ws, spdy, func(err error) bool {
		return httpstream.IsUpgradeFailure(err) || httpstream.IsHTTPSProxyError(err)
	})
}

// Exec runs command in target and returns the non-empty lines of its stdout.
// The pod is looked up first so a vanished pod is reported as an *ExecError
// rather than a transport failure.
func (e *PodExecutor) Exec(ctx context.Context, target PodTarget, command []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if _, err := e.pods.Pods(target.Namespace).Get(ctx, target.Pod, metav1.GetOptions{}); err != nil {
		if apierrors.IsNotFound(err) {
			return nil, &ExecError{Target: target, Command: command, Err: err}
		}
		return nil, &APIError{Op: "get pod " + target.Namespace + "/" + target.Pod, Err: err}
	}

	req := e.rest.Post().
		Resource("pods").
		Namespace(target.Namespace).
		Name(target.Pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: target.Container,
			Command:   command,
			Stdin:     false,
			Stdout:    true,
			Stderr:    true,
			TTY:       false,
		}, scheme.ParameterCodec)

	exec, err := e.newExecutor(e.config, http.MethodPost, req.URL())
	if err != nil {
		return nil, &ExecError{Target: target, Command: command, Err: err}
	}

	var stdout, stderr bytes.Buffer
	logging.Debug("Exec", "%s: %v", target, command)
	err = exec.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return nil, &ExecError{
			Target:  target,
			Command: command,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Err:     err,
		}
	}
	if stderr.Len() > 0 {
		logging.Debug("Exec", "%s stderr: %s", target, strs.Truncate(stderr.String(), strs.DefaultOutputMaxLen))
	}
	return strs.SplitLines(stdout.String()), nil
}
