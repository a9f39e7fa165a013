package kube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/client-go/tools/remotecommand"
)

// fakeStream writes canned output to the exec streams.
type fakeStream struct {
	stdout string
	stderr string
	err    error
	block  bool
}

func (f *fakeStream) Stream(options remotecommand.StreamOptions) error {
	return f.StreamWithContext(context.Background(), options)
}

func (f *fakeStream) StreamWithContext(ctx context.Context, options remotecommand.StreamOptions) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if options.Stdout != nil {
		fmt.Fprint(options.Stdout, f.stdout)
	}
	if options.Stderr != nil {
		fmt.Fprint(options.Stderr, f.stderr)
	}
	return f.err
}

func testRESTClient(t *testing.T) rest.Interface {
	t.Helper()
	c, err := rest.RESTClientFor(&rest.Config{
		Host:    "https://cluster.example",
		APIPath: "/api",
		ContentConfig: rest.ContentConfig{
			GroupVersion:         &corev1.SchemeGroupVersion,
			NegotiatedSerializer: scheme.Codecs.WithoutConversion(),
		},
	})
	require.NoError(t, err)
	return c
}

func newTestExecutor(t *testing.T, stream *fakeStream, seenURL **url.URL, objects ...runtime.Object) *PodExecutor {
	t.Helper()
	cs := fake.NewSimpleClientset(objects...)
	return &PodExecutor{
		pods:    cs.CoreV1(),
		rest:    testRESTClient(t),
		config:  &rest.Config{Host: "https://cluster.example"},
		timeout: time.Second,
		newExecutor: func(_ *rest.Config, method string, u *url.URL) (remotecommand.Executor, error) {
			if seenURL != nil {
				*seenURL = u
			}
			return stream, nil
		},
	}
}

func TestPodExecutor_Exec(t *testing.T) {
	var seen *url.URL
	stream := &fakeStream{stdout: "/calico/v1/host/a\n\n/calico/v1/host/b\n"}
	e := newTestExecutor(t, stream, &seen, pod("kube-system", "etcd-server-ip-10-0-0-1"))

	target := PodTarget{Namespace: "kube-system", Pod: "etcd-server-ip-10-0-0-1"}
	lines, err := e.Exec(context.Background(), target, []string{"etcdctl", "ls", "/calico/v1/host/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/calico/v1/host/a", "/calico/v1/host/b"}, lines)

	require.NotNil(t, seen)
	assert.Equal(t, "/api/v1/namespaces/kube-system/pods/etcd-server-ip-10-0-0-1/exec", seen.Path)
	q := seen.Query()
	assert.Equal(t, []string{"etcdctl", "ls", "/calico/v1/host/"}, q["command"])
	assert.Equal(t, "true", q.Get("stdout"))
	assert.Equal(t, "true", q.Get("stderr"))
	assert.Empty(t, q.Get("container"))
}

func TestPodExecutor_ExecInContainer(t *testing.T) {
	var seen *url.URL
	stream := &fakeStream{stdout: "ip-10x0x1x5\n"}
	e := newTestExecutor(t, stream, &seen, pod("kube-system", "calico-node-ab12c"))

	target := PodTarget{Namespace: "kube-system", Pod: "calico-node-ab12c", Container: "calico-node"}
	lines, err := e.Exec(context.Background(), target, []string{"sh", "-c", "hostname"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ip-10x0x1x5"}, lines)
	assert.Equal(t, "calico-node", seen.Query().Get("container"))
}

func TestPodExecutor_CommandFailure(t *testing.T) {
	stream := &fakeStream{stderr: "Error:  100: Key not found (/calico/v1/host/c)\n", err: errors.New("command terminated with exit code 4")}
	e := newTestExecutor(t, stream, nil, pod("kube-system", "etcd-server-ip-10-0-0-1"))

	target := PodTarget{Namespace: "kube-system", Pod: "etcd-server-ip-10-0-0-1"}
	_, err := e.Exec(context.Background(), target, []string{"etcdctl", "rm", "--recursive", "/calico/v1/host/c"})
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Contains(t, execErr.Stderr, "Key not found")
	assert.Contains(t, err.Error(), "exit code 4")
	assert.Equal(t, target, execErr.Target)
}

func TestPodExecutor_PodNotFound(t *testing.T) {
	e := newTestExecutor(t, &fakeStream{}, nil)

	_, err := e.Exec(context.Background(), PodTarget{Namespace: "kube-system", Pod: "gone"}, []string{"true"})
	var execErr *ExecError
	require.True(t, errors.As(err, &execErr), "expected ExecError, got %v", err)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestPodExecutor_PodLookupAPIError(t *testing.T) {
	e := newTestExecutor(t, &fakeStream{}, nil)
	cs := fake.NewSimpleClientset()
	cs.PrependReactor("get", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewInternalError(errors.New("etcd leader changed"))
	})
	e.pods = cs.CoreV1()

	_, err := e.Exec(context.Background(), PodTarget{Namespace: "kube-system", Pod: "x"}, []string{"true"})
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
}

func TestPodExecutor_Timeout(t *testing.T) {
	e := newTestExecutor(t, &fakeStream{block: true}, nil, pod("kube-system", "etcd-server-ip-10-0-0-1"))
	e.timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := e.Exec(context.Background(), PodTarget{Namespace: "kube-system", Pod: "etcd-server-ip-10-0-0-1"}, []string{"sleep", "60"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewPodExecutor_DefaultTimeout(t *testing.T) {
	e := NewPodExecutor(fake.NewSimpleClientset(), &rest.Config{}, 0)
	assert.Equal(t, DefaultCommandTimeout, e.timeout)
	assert.NotNil(t, e.newExecutor)
}

func TestErrorMessages(t *testing.T) {
	noMatch := &NoMatchError{Namespace: "kube-system", Pattern: "^etcd-server-ip.*"}
	assert.Equal(t, "/^etcd-server-ip.*/ no pattern matched pods in namespace kube-system", noMatch.Error())

	target := PodTarget{Namespace: "kube-system", Pod: "p", Container: "c"}
	assert.Equal(t, "kube-system/p/c", target.String())

	execErr := &ExecError{Target: target, Command: []string{"etcdctl", "ls"}, Stdout: "out", Stderr: "boom\n", Err: errors.New("exit 1")}
	assert.Equal(t, `exec "etcdctl ls" in kube-system/p/c: exit 1: boom`, execErr.Error())
	assert.Equal(t, "outboom\n", execErr.Output())

	apiErr := &APIError{Op: "list pods in kube-system", Err: apierrors.NewServiceUnavailable("down")}
	assert.True(t, apierrors.IsServiceUnavailable(apiErr))
}
